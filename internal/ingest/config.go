package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/reader"
)

type PipelineConfig struct {
	ConcurrencyLimit int
	// AliasesPath points to an alias table YAML. Empty means the built-in table.
	AliasesPath string
}

func LoadPipelineEnv() (*PipelineConfig, error) {
	cfg := &PipelineConfig{
		ConcurrencyLimit: batch.DefaultConcurrencyLimit,
		AliasesPath:      os.Getenv("ALIASES_PATH"),
	}

	if v := os.Getenv("CONCURRENCY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid CONCURRENCY_LIMIT value %q: must be a positive integer", v)
		}
		cfg.ConcurrencyLimit = n
	}
	return cfg, nil
}

// BatchOptions returns the writer options derived from the configuration.
func (c *PipelineConfig) BatchOptions() []batch.Option {
	return []batch.Option{batch.WithConcurrencyLimit(c.ConcurrencyLimit)}
}

func (c *PipelineConfig) Aliases() (*reader.AliasTable, error) {
	if c.AliasesPath == "" {
		return reader.DefaultAliasTable(), nil
	}

	f, err := os.Open(c.AliasesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open alias table: %w", err)
	}
	defer f.Close()

	table, err := reader.NewAliasLoader(f).Load(true)
	if err != nil {
		return nil, fmt.Errorf("invalid alias table %s: %w", c.AliasesPath, err)
	}
	slog.Info("Loaded alias table", "path", c.AliasesPath, "collections", len(table.Collections))
	return table, nil
}
