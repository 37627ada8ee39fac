package main

import (
	"fmt"
	"time"

	"venue-booking/config"
	"venue-booking/database"
	"venue-booking/database/seeders"
	"venue-booking/logger"
	"venue-booking/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024, // 10MB body limit
	})
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
		fmt.Println("Error loading .env file", err)
	}

	cfg := config.Load()

	logger.Success("Server is running on ip: " + cfg.AppHost + " port: " + cfg.AppPort +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	seeders.SeedCatalog(db)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Payment-Signature",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, cfg)

	if err := app.Listen(cfg.AppHost + ":" + cfg.AppPort); err != nil {
		logger.Error("Server stopped", err)
	}
}
