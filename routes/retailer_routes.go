package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterRetailerRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/retailers", controllers.GetRetailers)
	api.Get("/retailers/:id", controllers.GetRetailerByID)
	api.Post("/retailers", middleware.JWTMiddleware, controllers.CreateRetailer)
	api.Put("/retailers/:id", middleware.JWTMiddleware, controllers.UpdateRetailer)
	api.Delete("/retailers/:id", middleware.JWTMiddleware, controllers.DeleteRetailer)
}
