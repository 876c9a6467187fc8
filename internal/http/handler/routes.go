package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"cardsapi/internal/service"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	DB      Pinger
	Visits  service.VisitService
	Reviews service.ReviewService
	// Metrics serves GET /metrics when set.
	Metrics fiber.Handler
	Log     zerolog.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics)
	}

	app.Post("/enter", RecordVisit(d.Visits, d.Log))
	app.Get("/enter", ListVisits(d.Visits, d.Log))

	app.Post("/reviews", CreateReview(d.Reviews, d.Log))
	app.Get("/reviews", ListReviews(d.Reviews, d.Log))
}
