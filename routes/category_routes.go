package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterCategoryRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/categories", controllers.GetCategories)
	api.Get("/categories/:id", controllers.GetCategoryByID)
	api.Get("/categories/:id/descendants", controllers.GetCategoryDescendants)
	api.Post("/categories", middleware.JWTMiddleware, controllers.CreateCategory)
	api.Put("/categories/:id", middleware.JWTMiddleware, controllers.UpdateCategory)
	api.Delete("/categories/:id", middleware.JWTMiddleware, controllers.DeleteCategory)
}
