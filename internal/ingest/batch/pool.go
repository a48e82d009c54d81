package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EffectiveConcurrency is the number of workers RunPool starts for n items.
func EffectiveConcurrency(limit, n int) int {
	if n <= 0 {
		return 0
	}
	if limit < 1 {
		limit = 1
	}
	return min(limit, n)
}

// RunPool calls work once for every item using at most limit concurrent workers.
// Items are handed out in order from a shared queue; completion order is not defined.
//
// The pool is fail-fast: the first error cancels the context passed to work, idle
// workers stop taking items, and RunPool returns that error once in-flight calls return.
// Items that were not started are never processed and nothing is retried.
func RunPool[T any](ctx context.Context, items []T, limit int, work func(ctx context.Context, item T) error) error {
	workers := EffectiveConcurrency(limit, len(items))
	if workers == 0 {
		return nil
	}

	queue := make(chan T, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for item := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := work(gctx, item); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
