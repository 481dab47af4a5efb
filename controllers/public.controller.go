package controllers

import (
	"github.com/gin-gonic/gin"
)

// GetPublicGeneralSettings menangani pengaturan umum tanpa data sensitif.
func (ctrl *Controller) GetPublicGeneralSettings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"settings": settings.General.Public()})
}

// GetPublicContactSettings menangani informasi kontak untuk footer situs.
func (ctrl *Controller) GetPublicContactSettings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"settings": settings.General.PublicContact()})
}
