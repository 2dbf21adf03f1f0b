package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/models"
)

// AdminHandler manages user administration endpoints.
type AdminHandler struct {
	db *mongo.Database
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *mongo.Database) *AdminHandler {
	return &AdminHandler{db: db}
}

// ListUsers returns every registered user.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cursor, err := h.db.Collection(database.UsersCollection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}

// GetUserDetails returns a single user by id.
func (h *AdminHandler) GetUserDetails(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var user models.User
	if err := h.db.Collection(database.UsersCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type adminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateUser updates a user's name, email or role.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req adminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Role != "" {
		if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusBadRequest, "Please select a valid role")
		}
		updates["role"] = req.Role
	}

	// MongoDB rejects an empty $set.
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a field to update")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var updated models.User
	err = h.db.Collection(database.UsersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    updated,
	})
}

// DeactivateUser soft-deletes a user: the record stays retrievable but any
// further login attempt is refused.
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	result, err := h.db.Collection(database.UsersCollection).
		UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deactivated successfully",
	})
}
