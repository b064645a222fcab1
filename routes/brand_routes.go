package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterBrandRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/brands", controllers.GetBrands)
	api.Get("/brands/:id", controllers.GetBrandByID)
	api.Post("/brands", middleware.JWTMiddleware, controllers.CreateBrand)
	api.Put("/brands/:id", middleware.JWTMiddleware, controllers.UpdateBrand)
	api.Delete("/brands/:id", middleware.JWTMiddleware, controllers.DeleteBrand)
}
