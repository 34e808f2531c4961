package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gradelens/backend/internal/api"
	"github.com/gradelens/backend/internal/infrastructure/config"
	"github.com/gradelens/backend/internal/service"
	"github.com/gradelens/backend/internal/store"

	_ "github.com/gradelens/backend/docs" // generated swagger docs
)

// @title           GradeLens Calibration API
// @version         1.0
// @description     Evaluation feedback calibration and analytics engine: ingest AI evaluations, record teacher corrections, and serve running agreement statistics.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	stats := service.NewStatsEngine(cfg.TrendWindow)

	// Replay the ledgers so the running statistics match the stores.
	// A consistency fault here means the aggregates cannot be trusted;
	// refuse to serve rather than diverge silently.
	if err := stats.Rebuild(context.Background(), db); err != nil {
		logger.Error("failed to rebuild statistics from ledger", "error", err)
		os.Exit(1)
	}

	evaluationSvc := service.NewEvaluationService(db, stats, logger)
	feedbackSvc := service.NewFeedbackService(db, stats, logger)
	analyticsSvc := service.NewAnalyticsService(db, stats, cfg.ValidationPageSize)
	handler := api.NewHandler(evaluationSvc, feedbackSvc, analyticsSvc, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
