package controllers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
)

// Register menangani registrasi pengguna baru.
func (ctrl *Controller) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	hash, err := ctrl.hashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Phone:    req.Phone,
		Role:     models.RoleUser,
		IsActive: true,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Users.Create(ctx, user); err != nil {
		fail(c, err)
		return
	}
	result, err := ctrl.issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogAuth(c, "register", user.Email)
	created(c, "User registered successfully", gin.H{"user": result.User, "token": result.Token, "refreshToken": result.RefreshToken})
}

// Login menangani proses login pengguna.
func (ctrl *Controller) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ctrl.checkCredentials(ctx, req, "Invalid credentials", "Account is deactivated")
	if err != nil {
		fail(c, err)
		return
	}
	result, err := ctrl.issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogAuth(c, "login", user.Email)
	ok(c, "Login successful", gin.H{"user": result.User, "token": result.Token, "refreshToken": result.RefreshToken})
}

// Logout menangani logout. Token tidak disimpan di server, klien cukup
// membuangnya.
func (ctrl *Controller) Logout(c *gin.Context) {
	if user, err := mustUser(c); err == nil {
		logger.LogAuth(c, "logout", user.Email)
	}
	ok(c, "Logout successful", nil)
}

// GetProfile menangani pengambilan profil pengguna yang login.
func (ctrl *Controller) GetProfile(c *gin.Context) {
	user, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"user": user})
}

// UpdateProfile menangani perubahan nama, telepon dan avatar sendiri.
func (ctrl *Controller) UpdateProfile(c *gin.Context) {
	user, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	var in models.ProfileUpdate
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, err)
		return
	}
	set := map[string]interface{}{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.Avatar != nil {
		set["avatar"] = *in.Avatar
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := ctrl.Users.Update(ctx, user.ID, set)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Profile updated successfully", gin.H{"user": updated})
}

// checkCredentials returns the active account matching req. Unknown email
// and wrong password share one message.
func (ctrl *Controller) checkCredentials(ctx context.Context, req models.LoginRequest, invalid, inactive string) (*models.User, error) {
	user, err := ctrl.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthenticated(invalid)
		}
		return nil, err
	}
	if !ctrl.Hasher.Verify(user.Password, req.Password) {
		return nil, apperror.Unauthenticated(invalid)
	}
	if !user.IsActive {
		return nil, apperror.Unauthenticated(inactive)
	}
	return user, nil
}

// hashPassword rejects what bcrypt would silently truncate.
func (ctrl *Controller) hashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", apperror.Validation("password", "password cannot be more than 72 bytes")
	}
	hash, err := ctrl.Hasher.Hash(password)
	if err != nil {
		return "", apperror.Upstream("Failed to hash password", err)
	}
	return hash, nil
}

func (ctrl *Controller) issue(user *models.User) (*models.AuthResult, error) {
	token, err := ctrl.Tokens.Issue(user)
	if err != nil {
		return nil, apperror.Upstream("Failed to generate token", err)
	}
	refresh, err := ctrl.Tokens.IssueRefresh(user)
	if err != nil {
		return nil, apperror.Upstream("Failed to generate token", err)
	}
	return &models.AuthResult{User: user, Token: token, RefreshToken: refresh}, nil
}
