// Package auth issues and verifies PASETO session tokens and hashes
// passwords with bcrypt.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/o1egl/paseto"

	"hugox-backend/models"
)

const (
	footer        = "hugox"
	refreshFooter = "hugox-refresh"
	roleClaim     = "role"
)

// ErrInvalidToken covers malformed, tampered and expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a verified token says about its bearer.
type Claims struct {
	UserID    string
	Role      models.Role
	ExpiresAt time.Time
}

// TokenMaker signs and verifies v2.local tokens.
type TokenMaker struct {
	key        []byte
	refreshKey []byte
	ttl        time.Duration
	refreshTTL time.Duration
	v2         *paseto.V2
	now        func() time.Time
}

// NewTokenMaker requires two 32 byte keys.
func NewTokenMaker(key, refreshKey []byte, ttl, refreshTTL time.Duration) (*TokenMaker, error) {
	if len(key) != 32 || len(refreshKey) != 32 {
		return nil, fmt.Errorf("token keys must be 32 bytes")
	}
	return &TokenMaker{
		key:        key,
		refreshKey: refreshKey,
		ttl:        ttl,
		refreshTTL: refreshTTL,
		v2:         paseto.NewV2(),
		now:        time.Now,
	}, nil
}

// Issue returns a session token for user.
func (m *TokenMaker) Issue(user *models.User) (string, error) {
	return m.encrypt(m.key, user, m.ttl, footer)
}

// IssueRefresh returns the long-lived refresh credential. No endpoint
// accepts it yet.
func (m *TokenMaker) IssueRefresh(user *models.User) (string, error) {
	return m.encrypt(m.refreshKey, user, m.refreshTTL, refreshFooter)
}

func (m *TokenMaker) encrypt(key []byte, user *models.User, ttl time.Duration, foot string) (string, error) {
	now := m.now()
	jsonToken := paseto.JSONToken{
		Jti:        uuid.NewString(),
		Subject:    user.ID.Hex(),
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: now.Add(ttl),
	}
	jsonToken.Set(roleClaim, string(user.Role))
	token, err := m.v2.Encrypt(key, jsonToken, foot)
	if err != nil {
		return "", fmt.Errorf("encrypting token: %w", err)
	}
	return token, nil
}

// Verify decrypts a session token and checks its lifetime.
func (m *TokenMaker) Verify(token string) (*Claims, error) {
	var jsonToken paseto.JSONToken
	var foot string
	if err := m.v2.Decrypt(token, m.key, &jsonToken, &foot); err != nil {
		return nil, ErrInvalidToken
	}
	if foot != footer {
		return nil, ErrInvalidToken
	}
	if err := jsonToken.Validate(paseto.ValidAt(m.now())); err != nil {
		return nil, ErrInvalidToken
	}
	if jsonToken.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{
		UserID:    jsonToken.Subject,
		Role:      models.Role(jsonToken.Get(roleClaim)),
		ExpiresAt: jsonToken.Expiration,
	}, nil
}
