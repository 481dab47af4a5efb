package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/auth"
	"hugox-backend/logger"
	"hugox-backend/models"
)

const userKey = "currentUser"

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserFinder loads the account a token names.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Gate authenticates requests and checks roles.
type Gate struct {
	tokens TokenVerifier
	users  UserFinder
}

func NewGate(tokens TokenVerifier, users UserFinder) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate rejects the request unless it carries a valid token of an
// existing, active user.
func (g *Gate) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			abort(c, apperror.Unauthenticated("Access denied. No token provided."))
			return
		}
		user, err := g.resolve(c, token)
		if err != nil {
			abort(c, err)
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and
// proceeds anonymously otherwise.
func (g *Gate) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearer(c); token != "" {
			if user, err := g.resolve(c, token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// Authorize must run after Authenticate.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, apperror.Unauthenticated("Access denied. No token provided."))
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		abort(c, apperror.Forbidden("Access denied. Insufficient permissions."))
	}
}

// CurrentUser returns the user attached by the gate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func (g *Gate) resolve(c *gin.Context, token string) (*models.User, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Unauthenticated("Invalid token.")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperror.Unauthenticated("Invalid token.")
	}
	user, err := g.users.FindByID(c.Request.Context(), id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthenticated("Invalid token. User not found.")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.Unauthenticated("Account is deactivated.")
	}
	return user, nil
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Set(logger.UserIDKey, user.ID.Hex())
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// abort records err for the Errors middleware and stops the chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
