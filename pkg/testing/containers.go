// Package testing starts throwaway backends for the storage integration tests.
package testing

import (
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// imageOr lets CI pin a mirror image, e.g. TEST_PG_IMAGE=registry.local/postgres:17.5.
func imageOr(envKey, fallback string) string {
	if img := os.Getenv(envKey); img != "" {
		return img
	}
	return fallback
}

func terminateOnCleanup(tb testing.TB, name string, c testcontainers.Container) {
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			tb.Logf("failed to terminate %s container: %v", name, err)
		}
	})
}
