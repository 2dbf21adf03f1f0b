package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/middleware"
	"github.com/example/gearmart/internal/models"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db *mongo.Database
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *mongo.Database) *OrderHandler {
	return &OrderHandler{db: db}
}

type createOrderRequest struct {
	OrderItems    []models.OrderItem  `json:"order_items"`
	ShippingInfo  models.ShippingInfo `json:"shipping_info"`
	PaymentInfo   models.PaymentInfo  `json:"payment_info"`
	ItemsPrice    float64             `json:"items_price"`
	TaxPrice      float64             `json:"tax_price"`
	ShippingPrice float64             `json:"shipping_price"`
	TotalPrice    float64             `json:"total_price"`
}

// CreateOrder places a new order for the authenticated user.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order := models.Order{
		User:          user.ID,
		ShippingInfo:  req.ShippingInfo,
		OrderItems:    req.OrderItems,
		PaymentInfo:   req.PaymentInfo,
		PaidAt:        time.Now(),
		ItemsPrice:    req.ItemsPrice,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
		OrderStatus:   models.OrderStatusProcessing,
		CreatedAt:     time.Now(),
	}

	if err := order.Validate(); err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	result, err := h.db.Collection(database.OrdersCollection).InsertOne(ctx, &order)
	if err != nil {
		return err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

// GetOrder returns a single order with its owner's name and email.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var order models.Order
	if err := h.db.Collection(database.OrdersCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "The order you are looking for does not exist")
		}
		return err
	}

	var owner models.User
	if err := h.db.Collection(database.UsersCollection).
		FindOne(ctx, bson.M{"_id": order.User}).Decode(&owner); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
		"user": fiber.Map{
			"name":  owner.Name,
			"email": owner.Email,
		},
	})
}

// GetMyOrders lists the authenticated user's orders.
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cursor, err := h.db.Collection(database.OrdersCollection).Find(ctx, bson.M{"user": user.ID})
	if err != nil {
		return err
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

// ListOrders returns every order along with the revenue total.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cursor, err := h.db.Collection(database.OrdersCollection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return err
	}

	var totalAmount float64
	for _, order := range orders {
		totalAmount += order.TotalPrice
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"count":        len(orders),
		"total_amount": totalAmount,
		"orders":       orders,
	})
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

// UpdateOrder transitions the order status. Delivered is terminal: a
// delivered order rejects any further transition, and entering it
// decrements stock exactly once per line item.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !models.ValidStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid order status")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	orders := h.db.Collection(database.OrdersCollection)

	var order models.Order
	if err := orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "The order you are looking for does not exist")
		}
		return err
	}

	if order.OrderStatus == models.OrderStatusDelivered {
		return fiber.NewError(fiber.StatusBadRequest, "The order has already been delivered")
	}

	updates := bson.M{"order_status": req.Status}

	if req.Status == models.OrderStatusDelivered {
		products := h.db.Collection(database.ProductsCollection)
		for _, item := range order.OrderItems {
			_, err := products.UpdateByID(ctx, item.Product,
				bson.M{"$inc": bson.M{"stock": -item.Quantity}})
			if err != nil {
				return err
			}
		}

		now := time.Now()
		order.DeliveredAt = &now
		updates["delivered_at"] = now
	}

	order.OrderStatus = req.Status

	if _, err := orders.UpdateByID(ctx, id, bson.M{"$set": updates}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

// DeleteOrder removes an order from the store.
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	result, err := h.db.Collection(database.OrdersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "The order you are looking for does not exist")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
