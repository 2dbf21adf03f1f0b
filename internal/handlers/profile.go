package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/middleware"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/services"
	"github.com/example/gearmart/internal/utils"
)

// ProfileHandler manages the authenticated user's own account.
type ProfileHandler struct {
	db    *mongo.Database
	cfg   *config.Config
	media *services.MediaService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(db *mongo.Database, cfg *config.Config, media *services.MediaService) *ProfileHandler {
	return &ProfileHandler{db: db, cfg: cfg, media: media}
}

// GetProfile returns the authenticated user.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Avatar      string `json:"avatar"`
}

// UpdateProfile updates the authenticated user's own details. A replacement
// avatar destroys the previously hosted one before uploading.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
	}

	var req updateProfileRequest
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
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}

	if req.Avatar != "" {
		if user.Avatar.PublicID != "" && user.Avatar.PublicID != defaultAvatar.PublicID {
			if err := h.media.Destroy(user.Avatar.PublicID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to remove previous avatar")
			}
		}

		avatar, err := h.media.Upload(req.Avatar)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to upload avatar")
		}
		updates["avatar"] = avatar
	}

	// MongoDB rejects an empty $set; a body with nothing to change is a no-op.
	if len(updates) == 0 {
		return c.JSON(fiber.Map{
			"success": true,
			"user":    user,
		})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var updated models.User
	err := h.db.Collection(database.UsersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, bson.M{"$set": updates},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    updated,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	Password    string `json:"password"`
}

// ChangePassword rotates the authenticated user's password and reissues the
// session token.
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !utils.CheckPassword(user.Password, req.OldPassword) {
		return fiber.NewError(fiber.StatusBadRequest, "Old password is incorrect")
	}

	if len(req.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	_, err = h.db.Collection(database.UsersCollection).
		UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return err
	}

	user.Password = passwordHash
	return utils.SendToken(c, h.cfg, user, fiber.StatusOK)
}
