package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diabetes-care-service/internal/api/http/handlers"
	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Patients       *handlers.PatientsHandler
	Me             *handlers.MeHandler
	Records        *handlers.RecordsHandler
	AuthMiddleware *auth.AuthMiddleware
	StaticDir      string
}

// RegisterRoutes wires HTTP routes. Group middleware in fiber matches by path
// prefix, so each gated group gets its own prefix and the shared creation
// routes carry their middleware chain per route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	api := app.Group("/api")
	api.Post("/login", cfg.Auth.Login)
	api.Post("/register-endocrinologist", cfg.Auth.RegisterEndocrinologist)

	clinicianOnly := api.Group("/patients", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEndocrinologist))
	clinicianOnly.Post("/", cfg.Patients.Create)
	clinicianOnly.Get("/", cfg.Patients.List)
	clinicianOnly.Put("/:id", cfg.Patients.Update)
	clinicianOnly.Delete("/:id", cfg.Patients.Delete)
	clinicianOnly.Get("/:patientId/readings", cfg.Patients.ListReadings)
	clinicianOnly.Get("/:patientId/equipment", cfg.Patients.ListEquipment)
	clinicianOnly.Get("/:patientId/consumables", cfg.Patients.ListConsumables)

	patientOnly := api.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePatient))
	patientOnly.Get("/", cfg.Me.Profile)
	patientOnly.Get("/readings", cfg.Me.Readings)

	api.Post("/readings", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Records.CreateReading)
	api.Post("/equipment", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Records.CreateEquipment)
	api.Post("/consumables", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Records.CreateConsumable)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
}
