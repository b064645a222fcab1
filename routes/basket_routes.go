package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterBasketRoutes(app *fiber.App) {
	api := app.Group("/api/basket", middleware.JWTMiddleware)

	api.Get("/", controllers.GetBasket)
	api.Post("/", controllers.AddToBasket)
	api.Put("/:id", controllers.UpdateBasketItem)
	api.Delete("/:id", controllers.RemoveFromBasket)
}
