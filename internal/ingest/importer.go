package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/reader"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

// Source produces the records of one import and the number of input rows it rejected.
type Source[T any] interface {
	Records() (records []T, rejected int, err error)
}

type rowSource[T any] struct {
	reader     reader.Reader
	normalizer reader.Normalizer[T]
	collection string
}

// NewRowSource reads raw rows and normalizes them, skipping the rows the normalizer rejects.
func NewRowSource[T any](r reader.Reader, n reader.Normalizer[T], collection string) Source[T] {
	return &rowSource[T]{reader: r, normalizer: n, collection: collection}
}

func (s *rowSource[T]) Records() ([]T, int, error) {
	rows, err := s.reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s rows: %w", s.collection, err)
	}

	records := make([]T, 0, len(rows))
	rejected := 0
	for i, row := range rows {
		rec, err := s.normalizer.Normalize(row)
		if err != nil {
			rejected++
			// header is line 1
			slog.Warn("Rejected row", "collection", s.collection, "line", i+2, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, rejected, nil
}

type backupSource struct {
	backup *reader.Backup
}

func (s backupSource) Records() ([]storage.Document, int, error) {
	return s.backup.Documents, 0, nil
}

// Importer loads records from a Source and writes them through a batch.Writer.
type Importer[T any] struct {
	collection string
	source     Source[T]
	writer     *batch.Writer[T]

	mu      sync.Mutex
	cancel  context.CancelFunc
	summary Summary
}

func NewImporter[T any](collection string, source Source[T], writer *batch.Writer[T]) *Importer[T] {
	return &Importer[T]{
		collection: collection,
		source:     source,
		writer:     writer,
		summary:    Summary{Collection: collection},
	}
}

func (im *Importer[T]) Run(ctx context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	im.mu.Lock()
	im.cancel = cancel
	im.mu.Unlock()
	defer cancel()

	records, rejected, err := im.source.Records()
	if err != nil {
		return err
	}

	im.mu.Lock()
	im.summary.Read = len(records) + rejected
	im.summary.Rejected = rejected
	im.mu.Unlock()

	slog.Info("Import started",
		"collection", im.collection,
		"records", len(records),
		"rejected", rejected,
	)

	if err := im.writer.Write(ctx, records); err != nil {
		return fmt.Errorf("import into %s failed: %w", im.collection, err)
	}

	written := im.writer.Eligible(records)
	im.mu.Lock()
	im.summary.Written = written
	im.summary.Dropped = len(records) - written
	im.mu.Unlock()

	slog.Info("Import completed", "collection", im.collection, "duration", time.Since(start))
	return nil
}

func (im *Importer[T]) Stop() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.cancel != nil {
		slog.Info("Stopping import", "collection", im.collection)
		im.cancel()
	}
}

func (im *Importer[T]) Summary() Summary {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.summary
}

// NewCollectionImporter wires the normalizer and key function of a collection.
func NewCollectionImporter(collection string, src reader.Reader, aliases *reader.AliasTable, store storage.DocumentStore, opts ...batch.Option) (Job, error) {
	opts = append([]batch.Option{batch.WithSanitizer(domain.SanitizeKey)}, opts...)

	switch collection {
	case domain.CollectionApplications:
		return NewImporter(collection,
			NewRowSource(src, reader.NewApplicationNormalizer(aliases, time.Now), collection),
			batch.NewWriter(store, collection, domain.Application.Key, opts...),
		), nil
	case domain.CollectionColleges:
		return NewImporter(collection,
			NewRowSource(src, reader.NewCollegeNormalizer(aliases), collection),
			batch.NewWriter(store, collection, domain.College.Key, opts...),
		), nil
	case domain.CollectionPayments:
		return NewImporter(collection,
			NewRowSource(src, reader.NewPaymentNormalizer(aliases), collection),
			batch.NewWriter(store, collection, domain.Payment.Key, opts...),
		), nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

// NewRestore writes the documents of a backup back into its collection unchanged.
func NewRestore(backup *reader.Backup, store storage.DocumentStore, opts ...batch.Option) Job {
	opts = append([]batch.Option{batch.WithSanitizer(domain.SanitizeKey)}, opts...)
	return NewImporter(backup.Collection,
		Source[storage.Document](backupSource{backup: backup}),
		batch.NewWriter(store, backup.Collection, func(d storage.Document) string { return d.Key }, opts...),
	)
}
