package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/gearmart/internal/services"
)

// PaymentHandler manages payment-intent endpoints.
type PaymentHandler struct {
	stripe *services.StripeService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(stripe *services.StripeService) *PaymentHandler {
	return &PaymentHandler{stripe: stripe}
}

type processPaymentRequest struct {
	Amount int64 `json:"amount"`
}

// ProcessPayment creates a payment intent at the gateway and returns the
// client secret the frontend confirms with.
func (h *PaymentHandler) ProcessPayment(c *fiber.Ctx) error {
	var req processPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a valid payment amount")
	}

	intent, err := h.stripe.CreatePaymentIntent(req.Amount, "usd")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"client_secret": intent.ClientSecret,
	})
}

// SendStripeAPIKey returns the publishable key.
func (h *PaymentHandler) SendStripeAPIKey(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stripe_api_key": h.stripe.PublishableKey(),
	})
}
