package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultMaxBatchOps = 500

const (
	upsertSQL = `
		INSERT INTO documents (collection, key, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	deleteSQL = `DELETE FROM documents WHERE collection = $1 AND key = $2`
	getSQL    = `SELECT key, data FROM documents WHERE collection = $1 AND key = $2`
	listSQL   = `SELECT key, data FROM documents WHERE collection = $1 ORDER BY key`
)

// Store keeps every collection in a single documents table keyed by (collection, key).
// A batch is committed as one transaction.
type Store struct {
	pool   *ConnectionPool
	db     *pgxpool.Pool
	maxOps int
}

func NewStore(pool *ConnectionPool, maxOps int) *Store {
	if maxOps <= 0 {
		maxOps = DefaultMaxBatchOps
	}
	return &Store{pool: pool, db: pool.conn, maxOps: maxOps}
}

func (s *Store) Begin() storage.Batch {
	return &batch{store: s}
}

func (s *Store) Get(ctx context.Context, collection, key string) (storage.Document, error) {
	var doc storage.Document
	err := s.db.QueryRow(ctx, getSQL, collection, key).Scan(&doc.Key, &doc.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Document{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, key, err)
	}
	return doc, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]storage.Document, error) {
	rows, err := s.db.Query(ctx, listSQL, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storage.Document, error) {
		var d storage.Document
		err := row.Scan(&d.Key, &d.Data)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
	}
	return docs, nil
}

func (s *Store) MaxBatchOps() int {
	return s.maxOps
}

func (s *Store) Close() {
	st := s.pool.Stats()
	slog.Info("Closing PostgreSQL pool",
		"acquired_total", st.AcquireCount(),
		"empty_acquire_waits", st.EmptyAcquireCount(),
		"max_conns", st.MaxConns(),
	)
	s.pool.Close()
}

type batch struct {
	storage.Ops
	store *Store
}

func (b *batch) Commit(ctx context.Context) error {
	if err := b.Validate(b.store.maxOps); err != nil {
		return err
	}

	tx, err := b.store.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC()
	pgBatch := &pgx.Batch{}
	for _, op := range b.Operations() {
		switch op.Kind {
		case storage.OpUpsert:
			pgBatch.Queue(upsertSQL, op.Collection, op.Key, []byte(op.Data), now)
		case storage.OpDelete:
			pgBatch.Queue(deleteSQL, op.Collection, op.Key)
		}
	}

	results := tx.SendBatch(ctx, pgBatch)
	for i, op := range b.Operations() {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to %s %s/%s (op %d): %w", op.Kind, op.Collection, op.Key, i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("pg batch committed", "ops", b.Len())
	return nil
}
