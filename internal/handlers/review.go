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

// ReviewHandler manages reviews embedded in product documents.
type ReviewHandler struct {
	db *mongo.Database
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(db *mongo.Database) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type reviewRequest struct {
	ProductID string  `json:"product_id"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
}

// CreateProductReview upserts the caller's review: a repeat submission
// overwrites the existing entry instead of appending. The aggregate rating
// is recomputed and persisted with a partial update, skipping full document
// validation on this hot path.
func (h *ReviewHandler) CreateProductReview(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Please log in first to access this resource")
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return &models.ValidationError{Messages: []string{"Rating must be between 1 and 5"}}
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	products := h.db.Collection(database.ProductsCollection)

	var product models.Product
	if err := products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	product.UpsertReview(models.Review{
		ID:        primitive.NewObjectID(),
		User:      user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	})

	_, err = products.UpdateByID(ctx, productID, bson.M{"$set": bson.M{
		"reviews":        product.Reviews,
		"ratings":        product.Rating,
		"num_of_reviews": product.NumOfReviews,
	}})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GetProductReviews lists the reviews of one product.
func (h *ReviewHandler) GetProductReviews(c *fiber.Ctx) error {
	productID, err := primitive.ObjectIDFromHex(c.Query("id"))
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var product models.Product
	if err := h.db.Collection(database.ProductsCollection).
		FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reviews": product.Reviews,
	})
}

// DeleteReview removes one review by id and recomputes the aggregate
// rating, which is 0 when no reviews remain.
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	productID, err := primitive.ObjectIDFromHex(c.Query("product_id"))
	if err != nil {
		return err
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Query("id"))
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	products := h.db.Collection(database.ProductsCollection)

	var product models.Product
	if err := products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	if !product.RemoveReview(reviewID) {
		return fiber.NewError(fiber.StatusNotFound, "Review not found")
	}

	_, err = products.UpdateByID(ctx, productID, bson.M{"$set": bson.M{
		"reviews":        product.Reviews,
		"ratings":        product.Rating,
		"num_of_reviews": product.NumOfReviews,
	}})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
