package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlwaysHealthy(t *testing.T) {
	assert.True(t, AlwaysHealthy.Healthy(context.Background()))
}

func TestWithTimeout(t *testing.T) {
	slow := HealthCheckFunc(func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
			return true
		}
	})

	assert.False(t, WithTimeout(slow, 10*time.Millisecond).Healthy(context.Background()))
	assert.True(t, WithTimeout(AlwaysHealthy, time.Millisecond).Healthy(context.Background()))
}
