package es

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
)

const (
	DefaultMaxBatchOps = 500

	listPageSize = 1_000
	pitKeepAlive = "1m"
)

// Store keeps one index per collection. A batch is sent as one bulk request;
// Elasticsearch applies bulk items independently, so a failed commit may be partially applied.
type Store struct {
	client      *elasticsearch.TypedClient
	indexPrefix string
	maxOps      int
}

func NewStore(config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	maxOps := config.MaxBatchOps
	if maxOps <= 0 {
		maxOps = DefaultMaxBatchOps
	}

	return &Store{
		client:      client,
		indexPrefix: config.IndexPrefix,
		maxOps:      maxOps,
	}, nil
}

func (s *Store) indexName(collection string) string {
	if s.indexPrefix == "" {
		return collection
	}
	return strings.ToLower(s.indexPrefix + "_" + collection)
}

// Ping reports whether the cluster answers.
func (s *Store) Ping(ctx context.Context) bool {
	ok, err := s.client.Ping().IsSuccess(ctx)
	if err != nil {
		slog.Warn("elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}

func (s *Store) Begin() storage.Batch {
	return &batch{store: s}
}

func (s *Store) Get(ctx context.Context, collection, key string) (storage.Document, error) {
	res, err := s.client.Get(s.indexName(collection), key).Do(ctx)
	if isNotFound(err) {
		return storage.Document{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, key, err)
	}
	if !res.Found {
		return storage.Document{}, storage.ErrNotFound
	}
	return storage.Document{Key: res.Id_, Data: res.Source_}, nil
}

// List reads the whole collection page by page inside a point in time, so a
// collection of any size is returned complete and in key order.
func (s *Store) List(ctx context.Context, collection string) ([]storage.Document, error) {
	pit, err := s.client.OpenPointInTime(s.indexName(collection)).KeepAlive(pitKeepAlive).Do(ctx)
	if isNotFound(err) {
		return []storage.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open point in time for %s: %w", collection, err)
	}
	pitID := pit.Id
	defer func() {
		if _, err := s.client.ClosePointInTime().Id(pitID).Do(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to close point in time", "collection", collection, "error", err)
		}
	}()

	var (
		docs  []storage.Document
		after []types.FieldValue
		total int64 = -1
	)
	for {
		req := s.client.Search().
			Pit(&types.PointInTimeReference{Id: pitID, KeepAlive: pitKeepAlive}).
			Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
			Sort("_shard_doc").
			Size(listPageSize).
			TrackTotalHits(true)
		if after != nil {
			req = req.SearchAfter(after...)
		}

		res, err := req.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, err)
		}
		if res.PitId != nil {
			pitID = *res.PitId
		}
		if total < 0 && res.Hits.Total != nil {
			total = res.Hits.Total.Value
		}

		hits := res.Hits.Hits
		for _, hit := range hits {
			if hit.Id_ == nil {
				continue
			}
			docs = append(docs, storage.Document{Key: *hit.Id_, Data: hit.Source_})
		}
		if len(hits) < listPageSize {
			break
		}
		after = hits[len(hits)-1].Sort
		if len(after) == 0 {
			return nil, fmt.Errorf("failed to list %s: page without sort values", collection)
		}
	}

	if total >= 0 && int64(len(docs)) != total {
		return nil, fmt.Errorf("failed to list %s: read %d of %d documents", collection, len(docs), total)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
	if docs == nil {
		docs = []storage.Document{}
	}
	return docs, nil
}

func (s *Store) MaxBatchOps() int {
	return s.maxOps
}

func (s *Store) Close() {}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}

type batch struct {
	storage.Ops
	store *Store
}

func (b *batch) Commit(ctx context.Context) error {
	if err := b.Validate(b.store.maxOps); err != nil {
		return err
	}

	req := b.store.client.Bulk().Refresh(refresh.Waitfor)
	for _, op := range b.Operations() {
		index := b.store.indexName(op.Collection)
		id := op.Key
		var err error
		switch op.Kind {
		case storage.OpUpsert:
			err = req.IndexOp(types.IndexOperation{Index_: &index, Id_: &id}, op.Data)
		case storage.OpDelete:
			err = req.DeleteOp(types.DeleteOperation{Index_: &index, Id_: &id})
		}
		if err != nil {
			return fmt.Errorf("failed to add %s %s/%s to bulk request: %w", op.Kind, op.Collection, op.Key, err)
		}
	}

	res, err := req.Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute bulk request: %w", err)
	}
	if !res.Errors {
		slog.Debug("es bulk committed", "ops", b.Len())
		return nil
	}

	failed := 0
	var first string
	for _, item := range res.Items {
		for action, ri := range item {
			// deleting a missing document is not a failure
			if ri.Error == nil || ri.Status == http.StatusNotFound {
				continue
			}
			failed++
			if first == "" {
				reason := ""
				if ri.Error.Reason != nil {
					reason = *ri.Error.Reason
				}
				id := ""
				if ri.Id_ != nil {
					id = *ri.Id_
				}
				first = fmt.Sprintf("%s %s: %s %s", action, id, ri.Error.Type, reason)
			}
		}
	}
	if failed == 0 {
		return nil
	}
	slog.Error("es bulk commit had failures", "failed", failed, "total", b.Len(), "first", first)
	return fmt.Errorf("failed to apply %d of %d bulk operations: %s", failed, b.Len(), first)
}
