package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
)

// settingsRequest is the body of PUT /api/admin/settings.
type settingsRequest struct {
	Section string          `json:"section"`
	Data    json.RawMessage `json:"data"`
}

// GetSettings menangani seluruh dokumen pengaturan.
func (ctrl *Controller) GetSettings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"settings": settings})
}

// UpdateSettings menangani penggabungan data ke satu bagian pengaturan.
func (ctrl *Controller) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	if req.Section == "" || len(req.Data) == 0 {
		fail(c, apperror.Validation("section", "Section and data are required"))
		return
	}
	settings, err := ctrl.mergeSettings(c, req.Section, func(s *models.Settings) error {
		return s.Merge(req.Section, req.Data)
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Settings updated successfully", gin.H{"settings": settings})
}

// GetGeneralSettings menangani bagian umum pengaturan.
func (ctrl *Controller) GetGeneralSettings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"settings": settings.General})
}

// UpdateGeneralSettings menangani perubahan bagian umum.
func (ctrl *Controller) UpdateGeneralSettings(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		fail(c, apperror.Validation("data", "data must be an object"))
		return
	}
	settings, err := ctrl.mergeSettings(c, models.SectionGeneral, func(s *models.Settings) error {
		return s.Merge(models.SectionGeneral, data)
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "General settings updated successfully", gin.H{"settings": settings.General})
}

// GetContactSettings menangani informasi kontak dari bagian umum.
func (ctrl *Controller) GetContactSettings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"settings": settings.General.Contact()})
}

// UpdateContactSettings menangani perubahan informasi kontak.
func (ctrl *Controller) UpdateContactSettings(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		fail(c, apperror.Validation("data", "data must be an object"))
		return
	}
	settings, err := ctrl.mergeSettings(c, models.SectionGeneral, func(s *models.Settings) error {
		return s.MergeContact(data)
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Contact settings updated successfully", gin.H{"settings": settings.General.Contact()})
}

// mergeSettings loads the singleton, applies merge and saves section.
func (ctrl *Controller) mergeSettings(c *gin.Context, section string, merge func(*models.Settings) error) (*models.Settings, error) {
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := ctrl.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := merge(settings); err != nil {
		return nil, err
	}
	saved, err := ctrl.Settings.Save(ctx, settings, section)
	if err != nil {
		return nil, err
	}
	logger.LogCRUD(c, "update", "settings", section)
	return saved, nil
}
