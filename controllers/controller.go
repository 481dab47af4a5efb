// Package controllers holds the Gin handlers of the public API and the
// admin back-office.
package controllers

import (
	"context"
	"time"

	"hugox-backend/auth"
	"hugox-backend/config"
	"hugox-backend/models"
	"hugox-backend/storage"
)

const requestTimeout = 10 * time.Second

// TokenIssuer menerbitkan token akses dan refresh.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
	IssueRefresh(user *models.User) (string, error)
}

// PasswordHasher membungkus bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// Controller menampung dependensi yang akan digunakan oleh semua handler.
type Controller struct {
	Users      UserStore
	Products   ProductStore
	Categories CategoryStore
	News       NewsStore
	Reviews    ReviewStore
	Contacts   ContactStore
	Settings   SettingsStore
	Filters    FilterStore
	Dashboard  DashboardService
	Images     storage.ImageStore
	Tokens     TokenIssuer
	Hasher     PasswordHasher
	Ping       func(ctx context.Context) error
	Config     *config.AppConfig
	Now        func() time.Time
}

var _ TokenIssuer = (*auth.TokenMaker)(nil)
var _ PasswordHasher = auth.BcryptHasher{}

func (ctrl *Controller) now() time.Time {
	if ctrl.Now != nil {
		return ctrl.Now()
	}
	return time.Now()
}

func (ctrl *Controller) maxFileSize() int64 {
	if ctrl.Config != nil && ctrl.Config.MaxFileSize > 0 {
		return ctrl.Config.MaxFileSize
	}
	return 5 << 20
}

func (ctrl *Controller) allowedTypes() []string {
	if ctrl.Config != nil && len(ctrl.Config.AllowedFileTypes) > 0 {
		return ctrl.Config.AllowedFileTypes
	}
	return []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
}
