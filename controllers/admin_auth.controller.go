package controllers

import (
	"github.com/gin-gonic/gin"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
)

const invalidAdmin = "Invalid admin credentials"

// AdminLogin menangani login akun admin. Akun non-admin ditolak dengan
// pesan yang sama seperti kata sandi salah.
func (ctrl *Controller) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ctrl.checkCredentials(ctx, req, invalidAdmin, "Admin account is deactivated")
	if err != nil {
		fail(c, err)
		return
	}
	if user.Role != models.RoleAdmin {
		fail(c, apperror.Unauthenticated(invalidAdmin))
		return
	}
	result, err := ctrl.issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogAuth(c, "admin_login", user.Email)
	ok(c, "Admin login successful", gin.H{"user": result.User, "token": result.Token, "refreshToken": result.RefreshToken})
}

// AdminLogout menangani logout admin.
func (ctrl *Controller) AdminLogout(c *gin.Context) {
	if user, err := mustUser(c); err == nil {
		logger.LogAuth(c, "admin_logout", user.Email)
	}
	ok(c, "Admin logout successful", nil)
}

// GetAdminProfile menangani profil admin yang login.
func (ctrl *Controller) GetAdminProfile(c *gin.Context) {
	user, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"user": user})
}
