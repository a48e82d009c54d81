package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/es"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/pg"
	"github.com/DjordjeVuckovic/exam-portal/pkg/server"
)

const healthTimeout = 2 * time.Second

// NewDocumentStore creates a storage.DocumentStore and a matching health checker for the configured backend.
func NewDocumentStore(ctx context.Context, cfg StorageConfig) (storage.DocumentStore, server.HealthChecker, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(pool, cfg.Pg.MaxBatchOps), server.WithTimeout(pg.NewHealthChecker(pool), healthTimeout), nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		s, err := es.NewStore(*cfg.Es)
		if err != nil {
			return nil, nil, err
		}
		return s, server.WithTimeout(server.HealthCheckFunc(s.Ping), healthTimeout), nil

	case storage.InMem:
		return in_mem.NewInMemStore(in_mem.WithMaxBatchOps(cfg.MaxBatchOps)), server.AlwaysHealthy, nil

	default:
		return nil, nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
