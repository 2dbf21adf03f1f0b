package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/models"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// SendToken issues a session token for the user, stores it in an HTTP-only
// cookie and writes the standard auth response envelope.
func SendToken(c *fiber.Ctx, cfg *config.Config, user *models.User, status int) error {
	token, err := GenerateToken(cfg.JWTSecret, user.ID, cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(cfg.CookieExpires),
		HTTPOnly: true,
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// ClearTokenCookie expires the session cookie.
func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}
