package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/exam-portal/internal/api/server"
	"github.com/DjordjeVuckovic/exam-portal/internal/fees"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/factory"
	"github.com/DjordjeVuckovic/exam-portal/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type PortalConfig struct {
	Server        *server.Config
	StorageConfig factory.StorageConfig
	Pipeline      *ingest.PipelineConfig
	Fees          fees.Schedule
}

func (as *AppConfig) Load() (*PortalConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/portal_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	serverCfg, err := server.LoadConfig()
	if err != nil {
		return nil, err
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

	schedule, err := fees.LoadScheduleEnv()
	if err != nil {
		return nil, err
	}

	return &PortalConfig{
		Server:        serverCfg,
		StorageConfig: *storageCfg,
		Pipeline:      pipelineCfg,
		Fees:          schedule,
	}, nil
}
