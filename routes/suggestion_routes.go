package routes

import (
	"shopsave-backend/controllers"
	"shopsave-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterSuggestionRoutes(app *fiber.App) {
	api := app.Group("/api/suggestions", middleware.JWTMiddleware)

	api.Get("/", controllers.GetSuggestions)
	api.Patch("/:id/intervention", controllers.ToggleIntervention)
	api.Post("/:id/match", controllers.MatchCandidate)
	api.Post("/promote", controllers.PromoteCandidate)
}
