package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const defaultESImage = "docker.elastic.co/elasticsearch/elasticsearch:8.15.3"

type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

// NewESContainer starts a single node cluster with security disabled.
// The container is terminated when the test ends.
func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	c, err := elasticsearch.Run(ctx,
		imageOr("TEST_ES_IMAGE", defaultESImage),
		testcontainers.WithEnv(map[string]string{
			"xpack.security.enabled": "false",
			"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_cluster/health?wait_for_status=yellow").
				WithPort("9200/tcp").
				WithStartupTimeout(90*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}
	terminateOnCleanup(tb, "elasticsearch", c)

	host, err := c.Host(ctx)
	if err != nil {
		tb.Fatalf("failed to get elasticsearch host: %v", err)
	}
	port, err := c.MappedPort(ctx, "9200/tcp")
	if err != nil {
		tb.Fatalf("failed to get elasticsearch port: %v", err)
	}

	return &ESContainer{
		Container: c,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}
