package validator

import (
	"net/http"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerBody struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&registerBody{Name: "Alice", Email: "alice@example.com", Password: "secret1"}))

	err := v.Validate(&registerBody{Email: "not-an-email"})
	require.Error(t, err)

	appErr, ok := errors.AsType[domainerrors.AppError](err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "email must be a valid email address; name is required; password is required", appErr.Message())
}
