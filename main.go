package main

import (
	"log"

	"github.com/ciby9833/xspace-sub002/config"
	"github.com/ciby9833/xspace-sub002/database"
	"github.com/ciby9833/xspace-sub002/handler"
	"github.com/ciby9833/xspace-sub002/helper"
	"github.com/ciby9833/xspace-sub002/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	config.Load()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	database.SeedData(db)

	helper.StartOrderScheduler(db)
	defer helper.StopOrderScheduler()

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGINS", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	h := handler.New(db)
	if config.Config("CLOUDINARY_CLOUD_NAME") != "" {
		h.Cloudinary = helper.InitCloudinary()
	}

	router.SetupRoutes(app, h)

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8002")))
}
