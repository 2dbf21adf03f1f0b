package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/middleware"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/services"
)

func profileApp(user *models.User) *fiber.App {
	cfg := &config.Config{Env: "production"}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(cfg)})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("currentUser", user)
		return c.Next()
	})

	handler := NewProfileHandler(nil, cfg, services.NewMediaService("", "", "avatars"))
	app.Put("/me/update", handler.UpdateProfile)
	return app
}

func TestUpdateProfileEmptyBodyIsNoop(t *testing.T) {
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Jordan",
		Email:    "jordan@example.com",
		IsActive: true,
	}
	app := profileApp(user)

	req := httptest.NewRequest(http.MethodPut, "/me/update", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])

	returned, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jordan", returned["name"])
	assert.Equal(t, "jordan@example.com", returned["email"])
}
