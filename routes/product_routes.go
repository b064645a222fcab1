package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterProductRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Listing and detail take an optional identity for basket/alert decoration.
	api.Post("/products/list", middleware.OptionalJWT, controllers.ListProducts)
	api.Get("/products/detail", middleware.OptionalJWT, controllers.GetProductDetail)

	api.Post("/products", middleware.JWTMiddleware, controllers.CreateProduct)
	api.Put("/products/:id", middleware.JWTMiddleware, controllers.UpdateProduct)
	api.Delete("/products/:id", middleware.JWTMiddleware, controllers.DeleteProduct)
	api.Put("/products/:id/pricing", middleware.JWTMiddleware, controllers.BulkRepriceProduct)

	api.Get("/pricing/:pricing_id/history", controllers.GetPricingHistory)
}
