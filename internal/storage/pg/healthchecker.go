package pg

import (
	"context"
	"log/slog"
)

const schemaCheckSQL = `SELECT to_regclass('documents') IS NOT NULL`

// HealthChecker reports healthy when the database answers and the documents table is migrated.
type HealthChecker struct {
	pool *ConnectionPool
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	var migrated bool
	if err := hc.pool.conn.QueryRow(ctx, schemaCheckSQL).Scan(&migrated); err != nil {
		slog.Warn("postgres health check failed", "error", err)
		return false
	}
	if !migrated {
		slog.Warn("postgres health check failed: documents table is missing, run db/migrations")
	}
	return migrated
}
