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

// ProductHandler manages the product catalog.
type ProductHandler struct {
	db    *mongo.Database
	cfg   *config.Config
	media *services.MediaService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(db *mongo.Database, cfg *config.Config, media *services.MediaService) *ProductHandler {
	return &ProductHandler{db: db, cfg: cfg, media: media}
}

// ListProducts returns one searched, filtered page of products along with
// the global and filtered counts.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	products := h.db.Collection(database.ProductsCollection)

	total, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}

	query := utils.NewProductQuery(c.Queries()).Search().Filter()

	filteredCount, err := products.CountDocuments(ctx, query.Criteria())
	if err != nil {
		return err
	}

	query.Paginate(h.cfg.ProductsPerPage)

	cursor, err := products.Find(ctx, query.Criteria(), query.Options())
	if err != nil {
		return err
	}

	page := []models.Product{}
	if err := cursor.All(ctx, &page); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":               true,
		"count":                 total,
		"resPerPage":            h.cfg.ProductsPerPage,
		"filteredProductsCount": filteredCount,
		"products":              page,
	})
}

// GetProduct returns a single product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	var product models.Product
	if err := h.db.Collection(database.ProductsCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// ListAdminProducts returns the whole catalog without pagination.
func (h *ProductHandler) ListAdminProducts(c *fiber.Ctx) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cursor, err := h.db.Collection(database.ProductsCollection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

type createProductRequest struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Seller      string   `json:"seller"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// CreateProduct uploads the request images to the asset host and inserts a
// new product.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Seller:      req.Seller,
		Stock:       req.Stock,
		Images:      []models.Image{},
		Reviews:     []models.Review{},
		CreatedAt:   time.Now(),
	}

	if err := product.Validate(); err != nil {
		return err
	}

	for _, file := range req.Images {
		image, err := h.media.Upload(file)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to upload product image")
		}
		product.Images = append(product.Images, image)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	result, err := h.db.Collection(database.ProductsCollection).InsertOne(ctx, &product)
	if err != nil {
		return err
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Seller      *string  `json:"seller"`
	Stock       *int     `json:"stock"`
	Images      []string `json:"images"`
}

// UpdateProduct applies a partial update. Replacement images destroy the
// previously hosted ones before uploading.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	products := h.db.Collection(database.ProductsCollection)

	var product models.Product
	if err := products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Seller != nil {
		product.Seller = *req.Seller
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := product.Validate(); err != nil {
		return err
	}

	if len(req.Images) > 0 {
		for _, image := range product.Images {
			if err := h.media.Destroy(image.PublicID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to remove previous product image")
			}
		}

		product.Images = []models.Image{}
		for _, file := range req.Images {
			image, err := h.media.Upload(file)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to upload product image")
			}
			product.Images = append(product.Images, image)
		}
	}

	if _, err := products.ReplaceOne(ctx, bson.M{"_id": id}, &product); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// DeleteProduct destroys the product's hosted images and removes it from
// the store.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	products := h.db.Collection(database.ProductsCollection)

	var product models.Product
	if err := products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	for _, image := range product.Images {
		if err := h.media.Destroy(image.PublicID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove product image")
		}
	}

	if _, err := products.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
