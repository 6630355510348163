package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
)

func TestOK(t *testing.T) {
	resp := response.OK("Login successful")
	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)
}

func TestError(t *testing.T) {
	resp := response.Error("something went wrong")
	assert.False(t, resp.Success)
	assert.Equal(t, "something went wrong", resp.Message)
}

func TestMaintenance(t *testing.T) {
	resp := response.Maintenance("Back soon")
	assert.False(t, resp.Success)
	assert.True(t, resp.MaintenanceMode)
	assert.Equal(t, "Back soon", resp.Message)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	validate := validator.New()
	err := validate.Struct(payload{Email: "not-an-email"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "field Name is a required field")
	assert.Contains(t, resp.Message, "field Email must be a valid email")
}
