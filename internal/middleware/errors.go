package middleware

import (
	"encoding/hex"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/models"
)

// ErrorHandler is the terminal handler turning any failure into the uniform
// error envelope. Development mode echoes the raw failure and a stack;
// production maps known failure categories to fixed messages.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		if !cfg.IsProduction() {
			return c.Status(status).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
				"error":   fmt.Sprintf("%+v", err),
				"stack":   string(debug.Stack()),
			})
		}

		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}

func classify(err error) (int, string) {
	var validationErr *models.ValidationError
	// ObjectIDFromHex reports wrong-length input with ErrInvalidHex but
	// right-length non-hex input with a hex.InvalidByteError.
	var hexErr hex.InvalidByteError

	switch {
	case errors.Is(err, primitive.ErrInvalidHex), errors.As(err, &hexErr):
		return fiber.StatusBadRequest, "Resource not found. Invalid id"
	case mongo.IsDuplicateKeyError(err):
		return fiber.StatusBadRequest, "Duplicate field value entered"
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.Is(err, jwt.ErrTokenExpired):
		return fiber.StatusUnauthorized, "Session token has expired, please log in again"
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fiber.StatusUnauthorized, "Session token is invalid, please log in again"
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
