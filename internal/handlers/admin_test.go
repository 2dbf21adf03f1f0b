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
)

func adminApp() *fiber.App {
	cfg := &config.Config{Env: "production"}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(cfg)})

	handler := NewAdminHandler(nil)
	app.Put("/admin/user/update/:id", handler.UpdateUser)
	return app
}

func putJSON(t *testing.T, app *fiber.App, path, payload string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAdminUpdateUserEmptyBody(t *testing.T) {
	app := adminApp()

	resp := putJSON(t, app, "/admin/user/update/"+primitive.NewObjectID().Hex(), "{}")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Please provide a field to update", body["message"])
}

func TestAdminUpdateUserRejectsUnknownRole(t *testing.T) {
	app := adminApp()

	resp := putJSON(t, app, "/admin/user/update/"+primitive.NewObjectID().Hex(), `{"role":"superuser"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Please select a valid role", body["message"])
}
