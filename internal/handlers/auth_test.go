package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/utils"
)

func storedUser(t *testing.T, password string, active bool) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	return &models.User{
		Name:     "Jordan",
		Email:    "jordan@example.com",
		Password: hash,
		IsActive: active,
	}
}

func TestVerifyCredentials(t *testing.T) {
	user := storedUser(t, "secret123", true)
	assert.NoError(t, verifyCredentials(user, "secret123"))
}

func TestVerifyCredentialsWrongPassword(t *testing.T) {
	user := storedUser(t, "secret123", true)

	err := verifyCredentials(user, "not-the-password")
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)
	assert.Equal(t, "Invalid email or password", fiberErr.Message)
}

func TestVerifyCredentialsDeactivatedAccount(t *testing.T) {
	user := storedUser(t, "secret123", false)

	err := verifyCredentials(user, "secret123")
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)
	assert.Equal(t, "Your account has been deactivated", fiberErr.Message)
}
