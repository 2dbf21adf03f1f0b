package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/gearmart/internal/config"
	"github.com/example/gearmart/internal/database"
	"github.com/example/gearmart/internal/middleware"
	"github.com/example/gearmart/internal/routes"
)

func main() {
	cfg := config.Load()

	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDatabase)
	database.EnsureIndexes(db)

	app := fiber.New(fiber.Config{
		AppName:      "Gearmart Backend",
		ErrorHandler: middleware.ErrorHandler(cfg),
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Printf("fiber.Shutdown error: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("mongo.Disconnect error: %v", err)
		}
	}()

	log.Printf("Starting server on :%s in %s mode", cfg.AppPort, cfg.Env)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
