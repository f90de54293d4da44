package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightpath-health/clinicstore/internal/api/router"
	"github.com/brightpath-health/clinicstore/internal/appointments"
	appconfig "github.com/brightpath-health/clinicstore/internal/config"
	"github.com/brightpath-health/clinicstore/internal/flatfile"
	"github.com/brightpath-health/clinicstore/internal/notify"
	"github.com/brightpath-health/clinicstore/internal/observability/metrics"
	"github.com/brightpath-health/clinicstore/internal/patients"
	"github.com/brightpath-health/clinicstore/internal/prescriptions"
	"github.com/brightpath-health/clinicstore/internal/referrals"
	"github.com/brightpath-health/clinicstore/pkg/logging"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinicstore",
		"env", cfg.Env,
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
	)

	store := flatfile.NewStore()
	if err := bootstrapDataFiles(store, cfg); err != nil {
		logger.Error("failed to bootstrap data files", "error", err)
		os.Exit(1)
	}

	recordMetrics := metrics.NewRecordMetrics(prometheus.DefaultRegisterer)

	patientsRepo := patients.NewRepository(store, cfg.PatientsFile, recordMetrics)
	appointmentsRepo := appointments.NewRepository(store, cfg.AppointmentsFile, recordMetrics)
	prescriptionsRepo := prescriptions.NewRepository(store, cfg.PrescriptionsFile, recordMetrics)
	referralsRepo := referrals.NewRepository(store, cfg.ReferralsFile, recordMetrics)

	appointmentsService := appointments.NewService(appointmentsRepo, appointments.NewValidator(), logger.Component("appointments"))

	notifier, err := notify.NewService(cfg.OutDir, logger.Component("notify"))
	if err != nil {
		logger.Error("failed to prepare side-channel files", "error", err)
		os.Exit(1)
	}

	// Exactly one coordinator per process: every referral mutation funnels
	// through this instance.
	coordinator := referrals.NewCoordinator(referralsRepo, notifier, cfg.QueueCapacity, recordMetrics, logger.Component("coordinator"))

	r := router.New(&router.Config{
		PatientsHandler:      patients.NewHandler(patientsRepo, logger.Component("patients")),
		AppointmentsHandler:  appointments.NewHandler(appointmentsService, logger.Component("appointments")),
		PrescriptionsHandler: prescriptions.NewHandler(prescriptionsRepo, logger.Component("prescriptions")),
		ReferralsHandler:     referrals.NewHandler(referralsRepo, coordinator, logger.Component("referrals")),
		MetricsHandler:       promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// bootstrapDataFiles creates any missing entity file with its header row so
// a fresh checkout starts with valid, loadable files.
func bootstrapDataFiles(store *flatfile.Store, cfg *appconfig.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	seeds := []struct {
		path   string
		header []string
	}{
		{cfg.PatientsFile, patients.Header},
		{cfg.AppointmentsFile, appointments.Header},
		{cfg.PrescriptionsFile, prescriptions.Header},
		{cfg.ReferralsFile, referrals.Header},
	}
	for _, s := range seeds {
		if err := store.EnsureFile(s.path, s.header); err != nil {
			return err
		}
	}
	return nil
}
