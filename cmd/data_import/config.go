package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/exam-portal/internal/ingest"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/factory"
	"github.com/DjordjeVuckovic/exam-portal/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type DataImportConfig struct {
	Pipeline *ingest.PipelineConfig
	factory.StorageConfig
}

func (as *AppConfig) Load() (*DataImportConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/data_import/.env", "cmd/data_import/pg.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	pipelineCfg, err := ingest.LoadPipelineEnv()
	if err != nil {
		return nil, err
	}

	return &DataImportConfig{
		Pipeline:      pipelineCfg,
		StorageConfig: *storageCfg,
	}, nil
}
