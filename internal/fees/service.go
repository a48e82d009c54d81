package fees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

// Service builds statements from the documents in a store.
type Service struct {
	store    storage.DocumentStore
	schedule Schedule
}

func NewService(store storage.DocumentStore, schedule Schedule) *Service {
	return &Service{store: store, schedule: schedule}
}

func (s *Service) Schedule() Schedule {
	return s.schedule
}

// Statements returns the statement of every college that has a record.
func (s *Service) Statements(ctx context.Context) ([]Statement, error) {
	apps, payments, colleges, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Ledger(s.schedule, apps, payments, colleges), nil
}

// Statement returns the statement of one registered college.
func (s *Service) Statement(ctx context.Context, code string) (Statement, error) {
	doc, err := s.store.Get(ctx, domain.CollectionColleges, domain.SanitizeKey(strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Statement{}, fmt.Errorf("college %s: %w", code, err)
		}
		return Statement{}, err
	}
	college, err := storage.Decode[domain.College](doc)
	if err != nil {
		return Statement{}, err
	}

	apps, payments, _, err := s.load(ctx)
	if err != nil {
		return Statement{}, err
	}

	for _, st := range Ledger(s.schedule, apps, payments, []domain.College{college}) {
		if st.College.Code == college.Code {
			return st, nil
		}
	}
	return Statement{College: college}, nil
}

func (s *Service) load(ctx context.Context) ([]domain.Application, []domain.Payment, []domain.College, error) {
	apps, err := list[domain.Application](ctx, s.store, domain.CollectionApplications)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := list[domain.Payment](ctx, s.store, domain.CollectionPayments)
	if err != nil {
		return nil, nil, nil, err
	}
	colleges, err := list[domain.College](ctx, s.store, domain.CollectionColleges)
	if err != nil {
		return nil, nil, nil, err
	}
	return apps, payments, colleges, nil
}

func list[T any](ctx context.Context, store storage.DocumentStore, collection string) ([]T, error) {
	docs, err := store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return storage.DecodeAll[T](docs)
}
