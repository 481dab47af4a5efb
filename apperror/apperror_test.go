package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("page", "bad"), http.StatusBadRequest},
		{Conflict("slug", "dup"), http.StatusBadRequest},
		{Unauthenticated("no token"), http.StatusUnauthorized},
		{Forbidden("admin only"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Upstream("db down", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Status(http.StatusUnauthorized), tc.err.Kind.String())
	}
	assert.Equal(t, http.StatusForbidden, Forbidden("x").Status(http.StatusForbidden))
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading product: %w", NotFound("Product not found"))
	ae, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, ae.Kind)
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(errors.New("plain"), KindNotFound))
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("Failed to load products", cause)
	assert.ErrorIs(t, err, cause)
}

type signup struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestFromBindingNamesField(t *testing.T) {
	v := validator.New()
	err := v.Struct(signup{Email: "a@b.co", Password: "123"})
	require.Error(t, err)

	ae := FromBinding(err)
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Equal(t, "password", ae.Field)
	assert.Equal(t, "password must be at least 6 characters", ae.Message)
}

func TestFromBindingUnknownError(t *testing.T) {
	ae := FromBinding(errors.New("weird"))
	assert.Equal(t, "body", ae.Field)
}
