package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const defaultPGImage = "postgres:17.5"

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

// NewPGContainer starts Postgres with the documents schema from db/migrations applied.
// The container is terminated when the test ends.
func NewPGContainer(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	scripts, err := migrationScripts()
	if err != nil {
		tb.Fatalf("failed to find migrations: %v", err)
	}

	c, err := postgres.Run(ctx,
		imageOr("TEST_PG_IMAGE", defaultPGImage),
		postgres.WithDatabase("exam_portal_test"),
		postgres.WithUsername("portal"),
		postgres.WithPassword("portal"),
		postgres.WithInitScripts(scripts...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start postgres container: %v", err)
	}
	terminateOnCleanup(tb, "postgres", c)

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("failed to get postgres connection string: %v", err)
	}

	return &PGContainer{Container: c, ConnString: connStr}
}

// migrationScripts returns the *.up.sql files in apply order.
func migrationScripts() ([]string, error) {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")

	scripts, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("no migrations in %s", dir)
	}
	sort.Strings(scripts)
	return scripts, nil
}
