package server

import (
	"context"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckFunc adapts a plain function to a HealthChecker.
type HealthCheckFunc func(ctx context.Context) bool

func (f HealthCheckFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// AlwaysHealthy is used by backends without a remote dependency.
var AlwaysHealthy HealthChecker = HealthCheckFunc(func(context.Context) bool { return true })

// WithTimeout bounds each check of hc by d.
func WithTimeout(hc HealthChecker, d time.Duration) HealthChecker {
	return HealthCheckFunc(func(ctx context.Context) bool {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return hc.Healthy(ctx)
	})
}
