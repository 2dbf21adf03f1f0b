package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/services"
	"github.com/example/gearmart/internal/utils"
)

const resetTokenTTL = 30 * time.Minute

// PasswordResetHandler manages the forgot-password flow.
type PasswordResetHandler struct {
	db   *mongo.Database
	cfg  *config.Config
	mail *services.MailService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(db *mongo.Database, cfg *config.Config, mail *services.MailService) *PasswordResetHandler {
	return &PasswordResetHandler{db: db, cfg: cfg, mail: mail}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword persists a hashed reset token and mails the reset link.
// When the mail collaborator fails, the token fields are cleared again so no
// dangling valid reset token survives.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter your email")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	users := h.db.Collection(database.UsersCollection)

	var user models.User
	if err := users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "User not found with this email")
		}
		return err
	}

	resetToken, err := utils.GenerateResetToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate reset token")
	}

	_, err = users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"reset_password_token":   utils.HashResetToken(resetToken),
		"reset_password_expires": time.Now().Add(resetTokenTTL),
	}})
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/password/reset/%s", c.Protocol(), c.Hostname(), resetToken)
	message := fmt.Sprintf("Your password reset link is:\n\n%s\n\nIf you have not requested this email, please ignore it.", resetURL)

	if err := h.mail.Send(user.Email, "Gearmart password recovery", message); err != nil {
		_, clearErr := users.UpdateByID(ctx, user.ID, bson.M{"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		}})
		if clearErr != nil {
			return clearErr
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email sent to: " + user.Email,
	})
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword sets a new password for the holder of a valid reset token
// and opens a session.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Password != req.ConfirmPassword {
		return fiber.NewError(fiber.StatusBadRequest, "Password does not match")
	}

	if len(req.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	users := h.db.Collection(database.UsersCollection)

	var user models.User
	err := users.FindOne(ctx, bson.M{
		"reset_password_token":   utils.HashResetToken(c.Params("token")),
		"reset_password_expires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusBadRequest, "Password reset token is invalid or has expired")
		}
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	_, err = users.UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"password": passwordHash},
		"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		},
	})
	if err != nil {
		return err
	}

	user.Password = passwordHash
	return utils.SendToken(c, h.cfg, &user, fiber.StatusOK)
}
