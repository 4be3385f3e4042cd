package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/doctor-finder/internal/api/router"
	"github.com/wolfman30/doctor-finder/internal/app/bootstrap"
	"github.com/wolfman30/doctor-finder/internal/assistant"
	appconfig "github.com/wolfman30/doctor-finder/internal/config"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/ingest"
	"github.com/wolfman30/doctor-finder/internal/observability/metrics"
	"github.com/wolfman30/doctor-finder/internal/webchat"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting doctor-finder API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	fmt.Println("Server exited gracefully")
}

func run(cfg *appconfig.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsHandler, assistantMetrics := setupMetrics()

	store, pool, err := bootstrap.BuildDoctorStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	sessions := bootstrap.BuildSessionStore(redisClient, cfg)

	client, closeLLM, err := bootstrap.BuildLLMClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLLM()

	source, err := bootstrap.BuildSource(ctx, cfg)
	if err != nil {
		return err
	}
	importer := ingest.NewImporter(store, assistantMetrics, logger)
	importOnStartup(ctx, cfg, store, source, importer, logger)

	searcher := doctors.NewSearcher(store, assistantMetrics, logger)
	dispatcher := assistant.NewDispatcher(searcher, client, assistant.Config{
		MaxDoctors:      cfg.MaxDoctorsDisplay,
		MaxHistoryTurns: cfg.MaxConversationHistory,
		BudgetMaxFee:    cfg.BudgetMaxFee,
		LLMTimeout:      cfg.LLMTimeout,
	}, assistantMetrics, logger)
	service := assistant.NewService(dispatcher, sessions, cfg.MaxConversationHistory, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        assistant.NewHandler(service, logger),
		DoctorsHandler:     doctors.NewHandler(searcher, logger),
		ImportHandler:      ingest.NewHandler(importer, source, logger),
		WebChat:            webchat.NewHandler(service, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := newServer(cfg, r)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// setupMetrics builds a private registry so tests can call it repeatedly.
func setupMetrics() (http.Handler, *metrics.AssistantMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewAssistantMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}

// importOnStartup loads the store before serving. Failures are logged and the
// server starts with whatever the store already holds.
func importOnStartup(ctx context.Context, cfg *appconfig.Config, store doctors.Store, source ingest.Source, importer *ingest.Importer, logger *logging.Logger) {
	should, err := bootstrap.ShouldImport(ctx, cfg, store, source)
	if err != nil {
		logger.Warn("could not check doctor store, skipping startup import", "error", err)
		return
	}
	if !should {
		return
	}
	report, err := importer.Import(ctx, source)
	if err != nil {
		logger.Error("startup import failed", "source", source.Describe(), "error", err)
		return
	}
	logger.Info("startup import finished", "source", report.Source, "rows", report.Inserted, "failed_files", report.Failed())
}

func newServer(cfg *appconfig.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
