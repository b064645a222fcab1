package main

import (
	"fmt"
	"log"
	"os"

	"shopsave-backend/controllers"
	"shopsave-backend/database"
	"shopsave-backend/routes"
	"shopsave-backend/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func initDatabase() {
	database.ConnectDatabase()

	if database.DB == nil {
		log.Fatalf("❌ Database connection is nil! Make sure the database is running.")
	}

	fmt.Println("✅ Database is ready!")
}

func initSearch() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("ELASTIC_URL not set, search index sync is disabled")
		return
	}

	client, err := search.New(url)
	if err != nil {
		// The index is a best-effort mirror; a missing client must not
		// prevent the catalog service from starting.
		log.Printf("❌ Failed to create search client: %v", err)
		return
	}

	controllers.SearchClient = client
	fmt.Println("✅ Search index client ready!")
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	initDatabase()
	initSearch()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))
	app.Use(logger.New())

	routes.RegisterUserRoutes(app)
	routes.RegisterProductRoutes(app)
	routes.RegisterSuggestionRoutes(app)
	routes.RegisterCategoryRoutes(app)
	routes.RegisterBrandRoutes(app)
	routes.RegisterRetailerRoutes(app)
	routes.RegisterBasketRoutes(app)
	routes.RegisterAlertRoutes(app)
	routes.RegisterSyncRoutes(app)

	app.Static("/uploads", "./uploads")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "🚀 ShopSave Backend is Running!"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	fmt.Println("🚀 Server running on port " + port)
	log.Fatal(app.Listen(":" + port))
}
