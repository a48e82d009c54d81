package in_mem

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

const DefaultMaxBatchOps = 500

// CommitHook runs before a batch is applied; a non-nil error aborts the commit.
type CommitHook func(ops []storage.Operation) error

type InMemStore struct {
	storageLock sync.RWMutex
	storage     map[string]map[string]json.RawMessage

	maxOps int
	hook   CommitHook
}

type Option func(*InMemStore)

func WithMaxBatchOps(n int) Option {
	return func(s *InMemStore) {
		s.maxOps = n
	}
}

func WithCommitHook(hook CommitHook) Option {
	return func(s *InMemStore) {
		s.hook = hook
	}
}

func NewInMemStore(opts ...Option) *InMemStore {
	s := &InMemStore{
		storage: make(map[string]map[string]json.RawMessage),
		maxOps:  DefaultMaxBatchOps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemStore) Begin() storage.Batch {
	return &batch{store: s}
}

func (s *InMemStore) Get(_ context.Context, collection, key string) (storage.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	data, ok := s.storage[collection][key]
	if !ok {
		return storage.Document{}, storage.ErrNotFound
	}
	return storage.Document{Key: key, Data: data}, nil
}

func (s *InMemStore) List(_ context.Context, collection string) ([]storage.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	docs := make([]storage.Document, 0, len(s.storage[collection]))
	for k, v := range s.storage[collection] {
		docs = append(docs, storage.Document{Key: k, Data: v})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
	return docs, nil
}

func (s *InMemStore) MaxBatchOps() int {
	return s.maxOps
}

func (s *InMemStore) Close() {}

func (s *InMemStore) apply(ops []storage.Operation) error {
	if s.hook != nil {
		if err := s.hook(ops); err != nil {
			return err
		}
	}

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, op := range ops {
		coll, ok := s.storage[op.Collection]
		if !ok {
			coll = make(map[string]json.RawMessage)
			s.storage[op.Collection] = coll
		}
		switch op.Kind {
		case storage.OpUpsert:
			coll[op.Key] = op.Data
		case storage.OpDelete:
			delete(coll, op.Key)
		}
	}
	slog.Debug("in-memory batch committed", "ops", len(ops))
	return nil
}

type batch struct {
	storage.Ops
	store *InMemStore
}

func (b *batch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.Validate(b.store.maxOps); err != nil {
		return err
	}
	return b.store.apply(b.Operations())
}
