package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/reader"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

type Exporter struct {
	store storage.DocumentStore
}

func NewExporter(store storage.DocumentStore) *Exporter {
	return &Exporter{store: store}
}

// Export writes every document of collection to w as a backup and returns how many were written.
func (e *Exporter) Export(ctx context.Context, collection string, w io.Writer) (int, error) {
	if !domain.IsCollection(collection) {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}

	docs, err := e.store.List(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	if err := reader.WriteBackup(w, reader.NewBackup(collection, docs)); err != nil {
		return 0, fmt.Errorf("failed to write %s backup: %w", collection, err)
	}

	slog.Info("Collection exported", "collection", collection, "documents", len(docs))
	return len(docs), nil
}
