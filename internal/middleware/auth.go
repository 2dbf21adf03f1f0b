package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/utils"
)

const userContextKey = "currentUser"

// UserLoader resolves a token subject to a stored user record.
type UserLoader func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// RoleSet is the set of roles permitted to reach a route.
type RoleSet map[string]struct{}

// Roles builds a RoleSet from the given role names.
func Roles(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether the role belongs to the set.
func (r RoleSet) Contains(role string) bool {
	_, ok := r[role]
	return ok
}

// Authenticate verifies the session cookie, resolves the embedded subject to
// a user record and attaches it to the request context. Token parse failures
// propagate to the terminal error handler, which maps them per category.
func Authenticate(cfg *config.Config, load UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(utils.TokenCookieName)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return err
		}

		user, err := load(c.Context(), userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fiber.NewError(fiber.StatusUnauthorized, "The user belonging to this token no longer exists")
			}
			return err
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// Authorize rejects any authenticated identity whose role is not in the
// route's declared allow-list.
func Authorize(allowed RoleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
		}

		if !allowed.Contains(user.Role) {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("Role (%s) is not authorized to access this resource", user.Role))
		}

		return c.Next()
	}
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	if user, ok := value.(*models.User); ok {
		return user, true
	}

	return nil, false
}
