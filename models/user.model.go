package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

// User is an account. Password holds the bcrypt hash and never leaves the server.
type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      Role               `json:"role" bson:"role"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	Avatar    string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LoginRequest is the body of the login endpoints.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,vnphone"`
}

// ProfileUpdate is the body of PUT /api/auth/profile.
type ProfileUpdate struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
}

// UserInput is the admin create/update body. On create Name, Email and
// Password are required; the controller checks that.
type UserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Role     *Role   `json:"role"`
	IsActive *bool   `json:"isActive"`
	Avatar   *string `json:"avatar"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Validate normalises the input; create makes name, email and password mandatory.
func (in *UserInput) Validate(create bool) error {
	if err := text("name", in.Name, create, 100); err != nil {
		return err
	}
	if err := text("email", in.Email, create, 0); err != nil {
		return err
	}
	if in.Email != nil {
		e := strings.ToLower(*in.Email)
		if !ValidEmail(e) {
			return apperror.Validation("email", "Valid email is required")
		}
		in.Email = &e
	}
	if create && in.Password == nil {
		return apperror.Validation("password", "password is required")
	}
	if in.Password != nil && len(*in.Password) < 6 {
		return apperror.Validation("password", "Password must be at least 6 characters")
	}
	if in.Phone != nil && *in.Phone != "" && !ValidPhone(*in.Phone) {
		return apperror.Validation("phone", "Valid phone number is required")
	}
	if in.Role != nil {
		if _, err := ParseEnum("role", string(*in.Role), Roles...); err != nil {
			return err
		}
	}
	return nil
}

// Validate normalises a self-service profile change.
func (in *ProfileUpdate) Validate() error {
	if in.Name != nil {
		if err := text("name", in.Name, true, 100); err != nil {
			return apperror.Validation("name", "Name cannot be empty")
		}
	}
	if in.Phone != nil && *in.Phone != "" && !ValidPhone(*in.Phone) {
		return apperror.Validation("phone", "Valid phone number is required")
	}
	return nil
}
