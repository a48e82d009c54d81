// Package main Exam Portal API
// @title Exam Portal API
// @version 1.0
// @description Bulk import, fee statements and letters for re-totaling and photocopy applications
// @contact.name Examination Section
// @contact.email examinations@university.local
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/exam-portal/internal/api/router"
	"github.com/DjordjeVuckovic/exam-portal/internal/api/server"
	"github.com/DjordjeVuckovic/exam-portal/internal/fees"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/letters"
	"github.com/DjordjeVuckovic/exam-portal/internal/notify"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/factory"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := ingest.NewMetrics(reg)

	store, healthChecker, err := factory.NewDocumentStore(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create document store", "error", err)
		os.Exit(1)
	}

	s := server.New(cfg.Server, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics", reg)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Exam Portal API is running")
	})

	aliases, err := cfg.Pipeline.Aliases()
	if err != nil {
		slog.Error("Failed to load alias table", "error", err)
		os.Exit(1)
	}

	renderer, err := letters.NewRenderer(cfg.Fees)
	if err != nil {
		slog.Error("Failed to parse letter templates", "error", err)
		os.Exit(1)
	}

	batchOpts := append(cfg.Pipeline.BatchOptions(), batch.WithObserver(metrics))

	imports := router.NewImportRouter(s.Context(), s.Echo, store, ingest.NewRuns(),
		router.WithAliases(aliases),
		router.WithBatchOptions(batchOpts...),
	)
	imports.Bind()
	router.NewApplicationRouter(s.Echo, store, batchOpts...).Bind()
	router.NewCollegeRouter(s.Echo, fees.NewService(store, cfg.Fees), renderer, notify.NewMailerFromEnv()).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	slog.Info("Waiting for background jobs to stop")
	imports.Wait()
	store.Close()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
