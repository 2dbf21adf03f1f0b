package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/services"
	"github.com/example/gearmart/internal/utils"
)

// defaultAvatar is assigned when registration carries no avatar upload.
var defaultAvatar = models.Image{
	PublicID: "avatars/sample",
	URL:      "https://media.example.com/avatars/sample.jpg",
}

// AuthHandler bundles dependencies for registration and session endpoints.
type AuthHandler struct {
	db    *mongo.Database
	cfg   *config.Config
	media *services.MediaService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *mongo.Database, cfg *config.Config, media *services.MediaService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, media: media}
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Avatar      string `json:"avatar"`
}

// Register creates a new user account and opens a session.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        models.RoleUser,
		IsActive:    true,
		Avatar:      defaultAvatar,
		CreatedAt:   time.Now(),
	}

	if err := user.Validate(req.Password); err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}
	user.Password = passwordHash

	if req.Avatar != "" {
		avatar, err := h.media.Upload(req.Avatar)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to upload avatar")
		}
		user.Avatar = avatar
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	result, err := h.db.Collection(database.UsersCollection).InsertOne(ctx, &user)
	if err != nil {
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	return utils.SendToken(c, h.cfg, &user, fiber.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing user and opens a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter email and password")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var user models.User
	err := h.db.Collection(database.UsersCollection).
		FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}

	if err := verifyCredentials(&user, req.Password); err != nil {
		return err
	}

	return utils.SendToken(c, h.cfg, &user, fiber.StatusOK)
}

// verifyCredentials checks a login attempt against the stored account. A
// deactivated account is refused even with the correct password.
func verifyCredentials(user *models.User, password string) error {
	if !utils.CheckPassword(user.Password, password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	if !user.IsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "Your account has been deactivated")
	}

	return nil
}

// Logout closes the session by expiring the token cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	utils.ClearTokenCookie(c)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
