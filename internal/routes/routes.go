package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/handlers"
	"github.com/example/gearmart/internal/middleware"
	"github.com/example/gearmart/internal/models"
	"github.com/example/gearmart/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *mongo.Database, cfg *config.Config) {
	mail := services.NewMailService(cfg.MailBaseURL, cfg.MailAPIToken, cfg.MailFrom)
	media := services.NewMediaService(cfg.MediaBaseURL, cfg.MediaAPIKey, cfg.MediaFolder)
	stripe := services.NewStripeService(cfg.StripeBaseURL, cfg.StripeSecretKey, cfg.StripePublicKey)

	authHandler := handlers.NewAuthHandler(db, cfg, media)
	profileHandler := handlers.NewProfileHandler(db, cfg, media)
	passwordResetHandler := handlers.NewPasswordResetHandler(db, cfg, mail)
	adminHandler := handlers.NewAdminHandler(db)
	productHandler := handlers.NewProductHandler(db, cfg, media)
	reviewHandler := handlers.NewReviewHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	paymentHandler := handlers.NewPaymentHandler(stripe)

	loadUser := func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		var user models.User
		if err := db.Collection(database.UsersCollection).
			FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			return nil, err
		}
		return &user, nil
	}

	authenticated := middleware.Authenticate(cfg, loadUser)
	adminOnly := middleware.Authorize(middleware.Roles(models.RoleAdmin))
	anyRole := middleware.Authorize(middleware.Roles(models.RoleUser, models.RoleAdmin))

	api := app.Group("/api/v1")

	// Auth and account routes
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/logout", authHandler.Logout)
	api.Post("/password/forgot", passwordResetHandler.ForgotPassword)
	api.Post("/password/reset/:token", passwordResetHandler.ResetPassword)

	api.Get("/me", authenticated, profileHandler.GetProfile)
	api.Put("/me/update", authenticated, profileHandler.UpdateProfile)
	api.Put("/password/update", authenticated, profileHandler.ChangePassword)

	// User administration
	api.Get("/admin/users/all", authenticated, adminOnly, adminHandler.ListUsers)
	api.Get("/user/details/:id", authenticated, adminOnly, adminHandler.GetUserDetails)
	api.Put("/admin/user/update/:id", authenticated, anyRole, adminHandler.UpdateUser)
	api.Delete("/admin/user/delete/:id", authenticated, adminOnly, adminHandler.DeactivateUser)

	// Products and reviews
	api.Get("/products", productHandler.ListProducts)
	api.Get("/product/:id", productHandler.GetProduct)
	api.Post("/admin/product/new", authenticated, adminOnly, productHandler.CreateProduct)
	api.Put("/admin/product/:id", authenticated, adminOnly, productHandler.UpdateProduct)
	api.Delete("/admin/product/:id", authenticated, adminOnly, productHandler.DeleteProduct)
	api.Get("/admin/products", authenticated, adminOnly, productHandler.ListAdminProducts)

	api.Put("/review", authenticated, reviewHandler.CreateProductReview)
	api.Get("/reviews", authenticated, reviewHandler.GetProductReviews)
	api.Delete("/admin/review/delete", authenticated, adminOnly, reviewHandler.DeleteReview)

	// Orders
	api.Post("/order/new", authenticated, orderHandler.CreateOrder)
	api.Get("/order/:id", authenticated, anyRole, orderHandler.GetOrder)
	api.Get("/orders/me", authenticated, orderHandler.GetMyOrders)
	api.Get("/admin/orders", authenticated, anyRole, orderHandler.ListOrders)
	api.Put("/admin/order/:id", authenticated, anyRole, orderHandler.UpdateOrder)
	api.Delete("/admin/order/:id", authenticated, anyRole, orderHandler.DeleteOrder)

	// Payments
	api.Post("/payment/process", authenticated, paymentHandler.ProcessPayment)
	api.Get("/stripe-api", authenticated, paymentHandler.SendStripeAPIKey)
}
