// Package router assembles the HTTP surface over the record core. The
// handlers call into the repositories, the appointments service and the
// referral coordinator; no business rule lives here.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brightpath-health/clinicstore/internal/appointments"
	"github.com/brightpath-health/clinicstore/internal/patients"
	"github.com/brightpath-health/clinicstore/internal/prescriptions"
	"github.com/brightpath-health/clinicstore/internal/referrals"
)

// Config holds router configuration
type Config struct {
	PatientsHandler      *patients.Handler
	AppointmentsHandler  *appointments.Handler
	PrescriptionsHandler *prescriptions.Handler
	ReferralsHandler     *referrals.Handler
	MetricsHandler       http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", cfg.PatientsHandler.List)
		r.Post("/", cfg.PatientsHandler.Create)
		r.Put("/{id}", cfg.PatientsHandler.Update)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", cfg.AppointmentsHandler.List)
		r.Post("/", cfg.AppointmentsHandler.Create)
		r.Put("/{id}", cfg.AppointmentsHandler.Update)
		r.Post("/{id}/cancel", cfg.AppointmentsHandler.Cancel)
	})

	r.Route("/prescriptions", func(r chi.Router) {
		r.Get("/", cfg.PrescriptionsHandler.List)
		r.Post("/", cfg.PrescriptionsHandler.Create)
		r.Put("/{id}", cfg.PrescriptionsHandler.Update)
		r.Post("/{id}/collect", cfg.PrescriptionsHandler.Collect)
	})

	r.Route("/referrals", func(r chi.Router) {
		r.Get("/", cfg.ReferralsHandler.List)
		r.Post("/", cfg.ReferralsHandler.Create)
		r.Put("/{id}", cfg.ReferralsHandler.Update)
		r.Get("/queue", cfg.ReferralsHandler.QueueSize)
		r.Post("/queue/next", cfg.ReferralsHandler.ProcessNext)
	})

	return r
}
