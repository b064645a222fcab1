package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterAlertRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.JWTMiddleware)

	api.Get("/price-alerts", controllers.GetPriceAlerts)
	api.Post("/price-alerts", controllers.CreatePriceAlert)
	api.Delete("/price-alerts/:id", controllers.DeletePriceAlert)

	api.Get("/notifications", controllers.GetNotifications)
	api.Patch("/notifications/:id/read", controllers.MarkNotificationRead)
}
