/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*   Employee management and payslip previews
  /api/facts/*       Bonuses, adjustments, attendance, commissions, loans
  /api/config/*      Tax, statutory, and engine configuration
  /api/payroll/*     Cycle runs
  /api/payslips/*    Generated payslips
  /api/cycles/*      Cycle history
  /api/scenarios/*   Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/payslips", h.ListEmployeePayslips)
			r.Post("/{id}/preview", h.PreviewPayslip)
		})

		// Fact ingestion routes
		r.Route("/facts", func(r chi.Router) {
			r.Post("/bonuses", h.CreateBonus)
			r.Post("/adjustments", h.CreateAdjustment)
			r.Post("/attendance", h.RecordAttendance)
			r.Post("/commissions", h.CreateCommission)
			r.Post("/loans", h.CreateLoan)
		})

		// Configuration routes
		r.Route("/config", func(r chi.Router) {
			r.Get("/tax", h.GetTaxConfig)
			r.Put("/tax", h.SetTaxConfig)
			r.Get("/statutory", h.GetStatutoryConfigs)
			r.Put("/statutory", h.SetStatutoryConfigs)
			r.Put("/engine", h.SetEngineConfig)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/run", h.RunCycle)
		})

		r.Route("/payslips", func(r chi.Router) {
			r.Get("/{id}", h.GetPayslip)
		})

		r.Route("/cycles", func(r chi.Router) {
			r.Get("/", h.ListCycles)
			r.Get("/{id}", h.GetCycle)
			r.Get("/{id}/payslips", h.ListCyclePayslips)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
