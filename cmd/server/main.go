package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/chatprobe/backend/internal/api"
	"github.com/chatprobe/backend/internal/assistant"
	"github.com/chatprobe/backend/internal/auth"
	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/domain/suite"
	"github.com/chatprobe/backend/internal/infrastructure/config"
	"github.com/chatprobe/backend/internal/metrics"
	"github.com/chatprobe/backend/internal/schedule"
	"github.com/chatprobe/backend/internal/service"
	"github.com/chatprobe/backend/internal/store"

	_ "github.com/chatprobe/backend/docs" // generated swagger docs
)

// @title           ChatProbe API
// @version         1.0
// @description     Chatbot proxy and answer-quality regression runner.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := service.SeedDefaultSuite(context.Background(), db, cfg.TestDataPath, logger); err != nil {
		logger.Warn("failed to seed default suite", "path", cfg.TestDataPath, "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	proxy, err := chat.New(context.Background(), cfg.Chat())
	if err != nil {
		logger.Error("failed to create chat proxy", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	instrumented := chat.NewInstrumented(proxy, m, logger)

	var probe api.Prober
	if cfg.AssistantID != "" && cfg.OpenAIAPIKey != "" {
		probe = assistant.NewOpenAIProbe(cfg.OpenAIAPIKey, "", cfg.AssistantID, logger)
	} else {
		logger.Info("assistant probe disabled, OPENAI_API_KEY and ASSISTANT_ID are both required")
	}

	authSvc, err := auth.NewService(cfg.AdminEmail, cfg.AdminPassword, auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL))
	if err != nil {
		logger.Error("failed to set up authentication", "error", err)
		os.Exit(1)
	}

	runs := service.NewRunService(db, instrumented, m, logger)

	var scheduler *schedule.Scheduler
	if cfg.RunSchedule != "" {
		scheduler, err = schedule.New(cfg.RunSchedule, runs, suite.DefaultName, logger)
		if err != nil {
			logger.Error("failed to set up run schedule", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
	}

	handler := api.NewHandler(api.Deps{
		Store:     db,
		Runs:      runs,
		Proxy:     instrumented,
		Probe:     probe,
		Auth:      authSvc,
		EnvLookup: os.Getenv,
		Logger:    logger,
	})

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → Instrument → Auth → mux ──
	guarded := auth.Middleware(authSvc, api.Public, logger)(mux)
	logged := api.Logging(logger)(api.CORS(api.Instrument(m, mux)(guarded)))

	// ── Server ──────────────────────────────────────────────────────
	// No WriteTimeout: run streams stay open for the whole run.
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		if err := runs.Cancel(); err == nil {
			logger.Info("cancelled active test run")
		}
		if err := runs.Wait(ctx); err != nil {
			logger.Warn("test run did not finish before shutdown", "error", err)
		}
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "provider", proxy.Name(), "model", cfg.Model())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
