package storage

import (
	"context"
	"encoding/json"
)

// Batch accumulates upserts and deletes that are applied by a single Commit.
// Commit fails with ErrEmptyCommit when no operation was added.
type Batch interface {
	Upsert(collection, key string, value any)
	Delete(collection, key string)
	Len() int
	Commit(ctx context.Context) error
}

// DocumentStore is a keyed document database grouped into collections.
type DocumentStore interface {
	Begin() Batch
	Get(ctx context.Context, collection, key string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	// MaxBatchOps is the largest number of operations a single Commit accepts.
	MaxBatchOps() int
	Close()
}

type Document struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// StoredValue makes a restored Document write its payload rather than itself.
func (d Document) StoredValue() any {
	return d.Data
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
	ErrEmptyCommit       StorerError = "batch commit contains no operations"
	ErrBatchTooLarge     StorerError = "batch exceeds the maximum operations per commit"
	ErrNotFound          StorerError = "document not found"
)

func (e StorerError) Error() string {
	return string(e)
}
