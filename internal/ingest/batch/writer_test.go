package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func rowKey(r row) string { return r.Key }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{Key: fmt.Sprintf("r-%04d", i), Name: fmt.Sprintf("name %d", i)}
	}
	return out
}

// commitLog records the size of every batch that reached the store.
type commitLog struct {
	mu    sync.Mutex
	sizes []int
}

func (c *commitLog) hook(ops []storage.Operation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes = append(c.sizes, len(ops))
	return nil
}

func (c *commitLog) commits() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]int(nil), c.sizes...)
	sort.Ints(out)
	return out
}

type sinkRecorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (s *sinkRecorder) sink(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
}

func (s *sinkRecorder) all() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Snapshot(nil), s.snaps...)
}

// tickingClock advances by step on every call.
func tickingClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var n atomic.Int64
	return func() time.Time {
		return base.Add(time.Duration(n.Add(1)) * step)
	}
}

func TestWriter_EndToEnd(t *testing.T) {
	ctx := context.Background()
	log := &commitLog{}
	store := in_mem.NewInMemStore(in_mem.WithCommitHook(log.hook))
	rec := &sinkRecorder{}

	w := NewWriter(store, "applications", rowKey,
		WithAtomicOpLimit(500),
		WithConcurrencyLimit(25),
		WithSink(rec.sink),
		WithClock(tickingClock(time.Second)),
	)

	require.NoError(t, w.Write(ctx, rows(1203)))

	assert.Equal(t, []int{203, 500, 500}, log.commits())

	snaps := rec.all()
	require.Len(t, snaps, 3)
	last := snaps[len(snaps)-1]
	assert.Equal(t, 1203, last.Processed)
	assert.Equal(t, 1203, last.Total)
	assert.Equal(t, 100, last.Percent)
	assert.Equal(t, ETAFinishing, last.ETAState)

	docs, err := store.List(ctx, "applications")
	require.NoError(t, err)
	assert.Len(t, docs, 1203)
}

func TestWriter_EmptyInput(t *testing.T) {
	log := &commitLog{}
	store := in_mem.NewInMemStore(in_mem.WithCommitHook(log.hook))
	rec := &sinkRecorder{}

	w := NewWriter(store, "applications", rowKey, WithSink(rec.sink))

	require.NoError(t, w.Write(context.Background(), nil))
	assert.Empty(t, log.commits())
	assert.Empty(t, rec.all())
}

func TestWriter_DropsRecordsWithEmptyKeys(t *testing.T) {
	ctx := context.Background()
	log := &commitLog{}
	store := in_mem.NewInMemStore(in_mem.WithCommitHook(log.hook))
	rec := &sinkRecorder{}

	sanitize := func(s string) string {
		return strings.TrimSpace(strings.ReplaceAll(s, "/", "_"))
	}

	t.Run("single chunk", func(t *testing.T) {
		w := NewWriter(store, "one", rowKey, WithSanitizer(sanitize), WithSink(rec.sink))

		err := w.Write(ctx, []row{{Key: "A/B"}, {Key: ""}, {Key: "  "}})
		require.NoError(t, err)

		docs, err := store.List(ctx, "one")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "A_B", docs[0].Key)
	})

	t.Run("chunks without eligible records skip the commit", func(t *testing.T) {
		before := len(log.commits())
		rec.snaps = nil

		w := NewWriter(store, "two", rowKey,
			WithSanitizer(sanitize),
			WithAtomicOpLimit(1),
			WithSink(rec.sink),
		)

		err := w.Write(ctx, []row{{Key: "A/B"}, {Key: ""}, {Key: "  "}})
		require.NoError(t, err)

		assert.Len(t, log.commits(), before+1, "only the chunk with a valid key is committed")

		snaps := rec.all()
		require.Len(t, snaps, 3, "progress counts dropped records too")
		assert.Equal(t, 3, snaps[len(snaps)-1].Processed)
	})
}

func TestWriter_ProgressIsMonotonic(t *testing.T) {
	store := in_mem.NewInMemStore(in_mem.WithCommitHook(func(ops []storage.Operation) error {
		time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
		return nil
	}))
	rec := &sinkRecorder{}

	w := NewWriter(store, "applications", rowKey,
		WithAtomicOpLimit(7),
		WithConcurrencyLimit(8),
		WithSink(rec.sink),
	)

	require.NoError(t, w.Write(context.Background(), rows(250)))

	snaps := rec.all()
	require.Len(t, snaps, 36)
	for i := 1; i < len(snaps); i++ {
		assert.GreaterOrEqual(t, snaps[i].Processed, snaps[i-1].Processed)
		assert.GreaterOrEqual(t, snaps[i].Percent, snaps[i-1].Percent)
	}
	assert.Equal(t, 250, snaps[len(snaps)-1].Processed)
	assert.Equal(t, 250, snaps[len(snaps)-1].Total)
}

func TestWriter_FailFastKeepsCommittedChunks(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("permission denied")

	var commits atomic.Int32
	store := in_mem.NewInMemStore(in_mem.WithCommitHook(func(ops []storage.Operation) error {
		if commits.Add(1) == 3 {
			return boom
		}
		return nil
	}))
	rec := &sinkRecorder{}

	w := NewWriter(store, "applications", rowKey,
		WithAtomicOpLimit(2),
		WithConcurrencyLimit(1),
		WithSink(rec.sink),
	)

	err := w.Write(ctx, rows(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "chunk 3 of 5")

	docs, err := store.List(ctx, "applications")
	require.NoError(t, err)
	assert.Len(t, docs, 4, "chunks committed before the failure are not rolled back")
	assert.Equal(t, int32(3), commits.Load(), "no chunk is started after the failure")

	snaps := rec.all()
	require.Len(t, snaps, 2)
	assert.Equal(t, 4, snaps[1].Processed)
}

func TestWriter_FailureWithConcurrentWorkers(t *testing.T) {
	boom := errors.New("network unreachable")
	store := in_mem.NewInMemStore(in_mem.WithCommitHook(func(ops []storage.Operation) error {
		for _, op := range ops {
			if op.Key == "r-0042" {
				return boom
			}
		}
		return nil
	}))

	w := NewWriter(store, "applications", rowKey, WithAtomicOpLimit(10), WithConcurrencyLimit(5))

	err := w.Write(context.Background(), rows(200))
	assert.ErrorIs(t, err, boom)
}

func TestWriter_FirstSnapshotIsCalculatingWithoutElapsedTime(t *testing.T) {
	frozen := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := &sinkRecorder{}

	w := NewWriter(in_mem.NewInMemStore(), "applications", rowKey,
		WithAtomicOpLimit(5),
		WithConcurrencyLimit(1),
		WithSink(rec.sink),
		WithClock(func() time.Time { return frozen }),
	)

	require.NoError(t, w.Write(context.Background(), rows(12)))

	snaps := rec.all()
	require.NotEmpty(t, snaps)
	assert.Equal(t, ETACalculating, snaps[0].ETAState)
	assert.Zero(t, snaps[0].ETASeconds)
}

func TestWriter_ClampsToBackendLimit(t *testing.T) {
	log := &commitLog{}
	store := in_mem.NewInMemStore(in_mem.WithMaxBatchOps(300), in_mem.WithCommitHook(log.hook))

	w := NewWriter(store, "applications", rowKey, WithAtomicOpLimit(500))
	require.NoError(t, w.Write(context.Background(), rows(700)))

	assert.Equal(t, []int{100, 300, 300}, log.commits())
}

func TestWriter_StoresValuerPayload(t *testing.T) {
	ctx := context.Background()
	store := in_mem.NewInMemStore()

	w := NewWriter(store, "colleges", func(d storage.Document) string { return d.Key })
	err := w.Write(ctx, []storage.Document{{Key: "C01", Data: []byte(`{"name":"City"}`)}})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "colleges", "C01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"City"}`, string(doc.Data))
}

func TestWriter_Delete(t *testing.T) {
	ctx := context.Background()
	store := in_mem.NewInMemStore()

	w := NewWriter(store, "applications", rowKey, WithAtomicOpLimit(3))
	require.NoError(t, w.Write(ctx, rows(8)))

	require.NoError(t, w.Delete(ctx, []string{"r-0000", "r-0001", "", "r-0007"}))

	docs, err := store.List(ctx, "applications")
	require.NoError(t, err)
	assert.Len(t, docs, 5)
}

type countingObserver struct {
	committed, skipped, failed, dropped, processed atomic.Int32
}

func (o *countingObserver) ChunkCommitted(string, int, time.Duration) { o.committed.Add(1) }
func (o *countingObserver) ChunkSkipped(string)                       { o.skipped.Add(1) }
func (o *countingObserver) ChunkFailed(string)                        { o.failed.Add(1) }
func (o *countingObserver) RecordsDropped(_ string, n int)            { o.dropped.Add(int32(n)) }
func (o *countingObserver) RecordsProcessed(_ string, n int)          { o.processed.Add(int32(n)) }

func TestWriter_NotifiesObserver(t *testing.T) {
	obs := &countingObserver{}
	w := NewWriter(in_mem.NewInMemStore(), "applications", rowKey,
		WithAtomicOpLimit(2),
		WithObserver(obs),
	)

	input := append(rows(3), row{Key: ""}, row{Key: " "})
	require.NoError(t, w.Write(context.Background(), input))

	assert.Equal(t, int32(2), obs.committed.Load())
	assert.Equal(t, int32(1), obs.skipped.Load())
	assert.Equal(t, int32(0), obs.failed.Load())
	assert.Equal(t, int32(2), obs.dropped.Load())
	assert.Equal(t, int32(5), obs.processed.Load())
}
