package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		Env:          "production",
		TokenExpires: time.Hour,
	}
}

func staticLoader(user *models.User) UserLoader {
	return func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		if user == nil || user.ID != id {
			return nil, mongo.ErrNoDocuments
		}
		return user, nil
	}
}

func gateApp(cfg *config.Config, loader UserLoader, allowed RoleSet) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(cfg)})

	handlers := []fiber.Handler{Authenticate(cfg, loader)}
	if allowed != nil {
		handlers = append(handlers, Authorize(allowed))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "user missing from context")
		}
		return c.JSON(fiber.Map{"success": true, "email": user.Email})
	})

	app.Get("/probe", handlers...)
	return app
}

func probeRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: token})
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRoleSetContains(t *testing.T) {
	set := Roles(models.RoleUser, models.RoleAdmin)

	assert.True(t, set.Contains(models.RoleUser))
	assert.True(t, set.Contains(models.RoleAdmin))
	assert.False(t, set.Contains("moderator"))
	assert.False(t, Roles().Contains(models.RoleUser))
}

func TestAuthenticateMissingCookie(t *testing.T) {
	app := gateApp(testConfig(), staticLoader(nil), nil)

	resp, err := app.Test(probeRequest(""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestAuthenticateValidToken(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: primitive.NewObjectID(), Email: "jordan@example.com", Role: models.RoleUser}
	app := gateApp(cfg, staticLoader(user), nil)

	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(probeRequest(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "jordan@example.com", body["email"])
}

func TestAuthenticateExpiredToken(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	app := gateApp(cfg, staticLoader(user), nil)

	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, -time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(probeRequest(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["message"], "expired")
}

func TestAuthenticateWrongKey(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	app := gateApp(cfg, staticLoader(user), nil)

	token, err := utils.GenerateToken("another-secret", user.ID, time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(probeRequest(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	cfg := testConfig()
	app := gateApp(cfg, staticLoader(nil), nil)

	token, err := utils.GenerateToken(cfg.JWTSecret, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(probeRequest(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthorizeRoleNotInSet(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	app := gateApp(cfg, staticLoader(user), Roles(models.RoleAdmin))

	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(probeRequest(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["message"], "not authorized")
}

func TestAuthorizeRoleInSet(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: primitive.NewObjectID(), Email: "root@example.com", Role: models.RoleAdmin}
	app := gateApp(cfg, staticLoader(user), Roles(models.RoleAdmin))

	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(probeRequest(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
