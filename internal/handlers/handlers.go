package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dbCtx bounds a store round-trip to the request lifetime.
func dbCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 10*time.Second)
}

// objectIDParam parses a path parameter as an ObjectID. The raw parse error
// propagates so the terminal handler reports it as an invalid-id failure.
func objectIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Params(name))
}
