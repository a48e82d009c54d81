package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

// Deleter removes every document of a collection through the batch writer.
type Deleter struct {
	collection string
	store      storage.DocumentStore
	writer     *batch.Writer[storage.Document]

	mu      sync.Mutex
	cancel  context.CancelFunc
	summary Summary
}

func NewDeleter(collection string, store storage.DocumentStore, opts ...batch.Option) *Deleter {
	return &Deleter{
		collection: collection,
		store:      store,
		writer:     batch.NewWriter(store, collection, func(d storage.Document) string { return d.Key }, opts...),
		summary:    Summary{Collection: collection},
	}
}

func (d *Deleter) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()
	defer cancel()

	docs, err := d.store.List(ctx, d.collection)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", d.collection, err)
	}

	keys := make([]string, len(docs))
	for i, doc := range docs {
		keys[i] = doc.Key
	}

	d.mu.Lock()
	d.summary.Read = len(keys)
	d.mu.Unlock()

	if err := d.writer.Delete(ctx, keys); err != nil {
		return fmt.Errorf("delete from %s failed: %w", d.collection, err)
	}

	d.mu.Lock()
	d.summary.Written = len(keys)
	d.mu.Unlock()

	slog.Info("Collection cleared", "collection", d.collection, "documents", len(keys))
	return nil
}

func (d *Deleter) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Deleter) Summary() Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary
}
