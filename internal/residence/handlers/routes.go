package handlers

import (
	"polynomial-residence/internal/common/middleware"

	"github.com/gofiber/fiber/v3"
)

// Routes groups everything Register wires onto the app.
type Routes struct {
	Pages *PageHandler
	API   *APIHandler
	Ready func() error
}

// Register mounts the health probes, the docs, the JSON API and the
// session-bound pages.
func Register(app *fiber.App, r Routes) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(r.Ready))
	app.Get("/health/startup", StartupProbe)

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1", middleware.CORS())
	api.Get("/rooms", r.API.ListRooms)
	api.Get("/rooms/:id", r.API.GetRoom)
	api.Get("/layout", r.API.Layout)
	api.Get("/invoice", r.API.Invoice)

	// ============================================================
	// Downloads
	// ============================================================

	app.Get("/floor-plan.svg", r.Pages.FloorPlanSVG)
	app.Get("/floor-plan.png", r.Pages.FloorPlanPNG)

	// ============================================================
	// Pages
	// ============================================================

	session := r.Pages.Session()
	app.Get("/", session, r.Pages.Index)
	app.Get("/print", session, r.Pages.Print)
	app.Post("/nav/:page", session, r.Pages.Navigate)
	app.Post("/rooms/:id/open", session, r.Pages.OpenRoom)
	app.Post("/back", session, r.Pages.Back)
	app.Post("/floor-plan/hover/:id", session, r.Pages.Hover)
	app.Post("/floor-plan/leave", session, r.Pages.Leave)
	app.Post("/floor-plan/click/:id", session, r.Pages.Click)
}
