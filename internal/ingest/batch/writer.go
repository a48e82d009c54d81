package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

const (
	DefaultAtomicOpLimit    = 500
	DefaultConcurrencyLimit = 25
)

// Observer is notified about chunk outcomes, e.g. to export metrics.
type Observer interface {
	ChunkCommitted(collection string, ops int, took time.Duration)
	ChunkSkipped(collection string)
	ChunkFailed(collection string)
	RecordsDropped(collection string, n int)
	RecordsProcessed(collection string, n int)
}

// Valuer lets a record choose the value stored under its key instead of itself.
type Valuer interface {
	StoredValue() any
}

type Config struct {
	AtomicOpLimit    int
	ConcurrencyLimit int
	SanitizeKey      func(string) string
	Sink             Sink
	Clock            func() time.Time
	Observer         Observer
}

type Option func(*Config)

func WithAtomicOpLimit(n int) Option {
	return func(c *Config) {
		c.AtomicOpLimit = n
	}
}

func WithConcurrencyLimit(n int) Option {
	return func(c *Config) {
		c.ConcurrencyLimit = n
	}
}

func WithSanitizer(fn func(string) string) Option {
	return func(c *Config) {
		c.SanitizeKey = fn
	}
}

func WithSink(sink Sink) Option {
	return func(c *Config) {
		c.Sink = sink
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// Writer stores records of one collection in chunks no larger than the backend's
// atomic-write limit, committing chunks concurrently and reporting progress to a Sink.
type Writer[T any] struct {
	store      storage.DocumentStore
	collection string
	keyOf      func(T) string
	cfg        Config
}

func NewWriter[T any](store storage.DocumentStore, collection string, keyOf func(T) string, opts ...Option) *Writer[T] {
	cfg := Config{
		AtomicOpLimit:    store.MaxBatchOps(),
		ConcurrencyLimit: DefaultConcurrencyLimit,
		SanitizeKey:      strings.TrimSpace,
		Clock:            time.Now,
		Observer:         nopObserver{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if limit := store.MaxBatchOps(); limit > 0 && cfg.AtomicOpLimit > limit {
		slog.Warn("atomic op limit exceeds backend limit, clamping",
			"collection", collection,
			"requested", cfg.AtomicOpLimit,
			"backend_limit", limit,
		)
		cfg.AtomicOpLimit = limit
	}
	if cfg.AtomicOpLimit < 1 {
		cfg.AtomicOpLimit = DefaultAtomicOpLimit
	}
	if cfg.ConcurrencyLimit < 1 {
		cfg.ConcurrencyLimit = DefaultConcurrencyLimit
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}

	return &Writer[T]{
		store:      store,
		collection: collection,
		keyOf:      keyOf,
		cfg:        cfg,
	}
}

type entry[T any] struct {
	key    string
	record T
}

type chunk[T any] struct {
	index   int
	entries []entry[T]
}

// Write upserts records. Records whose sanitized key is empty are skipped without an error.
// On failure the first commit error is returned; chunks committed before it stay committed.
func (w *Writer[T]) Write(ctx context.Context, records []T) error {
	entries := make([]entry[T], len(records))
	for i, r := range records {
		entries[i] = entry[T]{key: w.safeKey(w.keyOf(r)), record: r}
	}

	return w.run(ctx, "write", entries, func(b storage.Batch, e entry[T]) {
		var value any = e.record
		if v, ok := any(e.record).(Valuer); ok {
			value = v.StoredValue()
		}
		b.Upsert(w.collection, e.key, value)
	})
}

// Delete removes the documents with the given keys using the same chunking and concurrency as Write.
func (w *Writer[T]) Delete(ctx context.Context, keys []string) error {
	entries := make([]entry[T], len(keys))
	for i, k := range keys {
		entries[i] = entry[T]{key: w.safeKey(k)}
	}

	return w.run(ctx, "delete", entries, func(b storage.Batch, e entry[T]) {
		b.Delete(w.collection, e.key)
	})
}

// Eligible counts the records Write would store, i.e. those with a non-empty sanitized key.
func (w *Writer[T]) Eligible(records []T) int {
	n := 0
	for _, r := range records {
		if w.safeKey(w.keyOf(r)) != "" {
			n++
		}
	}
	return n
}

func (w *Writer[T]) safeKey(raw string) string {
	return strings.TrimSpace(w.cfg.SanitizeKey(raw))
}

func (w *Writer[T]) run(ctx context.Context, op string, entries []entry[T], add func(storage.Batch, entry[T])) error {
	total := len(entries)
	if total == 0 {
		slog.Debug("nothing to write", "collection", w.collection, "op", op)
		return nil
	}

	start := w.cfg.Clock()

	dropped := 0
	for _, e := range entries {
		if e.key == "" {
			dropped++
		}
	}
	if dropped > 0 {
		slog.Warn("skipping records with an empty identity key",
			"collection", w.collection,
			"op", op,
			"dropped", dropped,
		)
		w.cfg.Observer.RecordsDropped(w.collection, dropped)
	}

	parts := Chunk(entries, w.cfg.AtomicOpLimit)
	chunks := make([]chunk[T], len(parts))
	for i, p := range parts {
		chunks[i] = chunk[T]{index: i, entries: p}
	}

	slog.Info("Starting batch write",
		"collection", w.collection,
		"op", op,
		"records", total,
		"chunks", len(chunks),
		"chunk_size", w.cfg.AtomicOpLimit,
		"workers", EffectiveConcurrency(w.cfg.ConcurrencyLimit, len(chunks)),
	)

	var (
		mu        sync.Mutex
		processed int
	)

	err := RunPool(ctx, chunks, w.cfg.ConcurrencyLimit, func(ctx context.Context, c chunk[T]) error {
		if err := w.commit(ctx, c, add); err != nil {
			return fmt.Errorf("chunk %d of %d in %s: %w", c.index+1, len(chunks), w.collection, err)
		}

		// progress includes dropped records so it always ends at total
		mu.Lock()
		defer mu.Unlock()
		processed += len(c.entries)
		w.cfg.Observer.RecordsProcessed(w.collection, len(c.entries))
		snap := Estimate(processed, total, start, w.cfg.Clock())
		if w.cfg.Sink != nil {
			w.cfg.Sink(snap)
		}
		return nil
	})

	duration := w.cfg.Clock().Sub(start)
	if err != nil {
		slog.Error("Batch write failed",
			"collection", w.collection,
			"op", op,
			"processed", processed,
			"total", total,
			"duration", duration,
			"error", err,
		)
		return err
	}

	slog.Info("Batch write completed",
		"collection", w.collection,
		"op", op,
		"total", total,
		"dropped", dropped,
		"duration", duration,
	)
	return nil
}

func (w *Writer[T]) commit(ctx context.Context, c chunk[T], add func(storage.Batch, entry[T])) error {
	b := w.store.Begin()
	for _, e := range c.entries {
		if e.key == "" {
			continue
		}
		add(b, e)
	}

	if b.Len() == 0 {
		slog.Debug("skipping commit of chunk without eligible records", "collection", w.collection, "chunk", c.index)
		w.cfg.Observer.ChunkSkipped(w.collection)
		return nil
	}

	began := time.Now()
	if err := b.Commit(ctx); err != nil {
		w.cfg.Observer.ChunkFailed(w.collection)
		return err
	}
	w.cfg.Observer.ChunkCommitted(w.collection, b.Len(), time.Since(began))
	return nil
}

type nopObserver struct{}

func (nopObserver) ChunkCommitted(string, int, time.Duration) {}
func (nopObserver) ChunkSkipped(string)                       {}
func (nopObserver) ChunkFailed(string)                        {}
func (nopObserver) RecordsDropped(string, int)                {}
func (nopObserver) RecordsProcessed(string, int)              {}
