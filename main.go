package main

import (
	"etutor/config"
	"etutor/database"
	adminRoutes "etutor/routers/adminRoutes"
	authRoutes "etutor/routers/authRoutes"
	quizRoutes "etutor/routers/quizRoutes"
	reviewRoutes "etutor/routers/reviewRoutes"
	tutorialRoutes "etutor/routers/tutorialRoutes"
	"etutor/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitializeAttemptSweeper()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files (tutorial thumbnails)
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	tutorialRoutes.SetupTutorialRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
