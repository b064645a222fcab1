package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterSyncRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/sync/search-index", middleware.JWTMiddleware, controllers.SyncSearchIndex)
}
