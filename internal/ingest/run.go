package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/google/uuid"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

var transitions = map[State][]State{
	StateIdle:    {StateRunning, StateFailed},
	StateRunning: {StateCompleted, StateFailed},
}

func (s State) canMoveTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type RunError string

const (
	ErrRunNotFound       RunError = "run not found"
	ErrInvalidTransition RunError = "invalid run state transition"
)

func (e RunError) Error() string {
	return string(e)
}

// Run is the observable state of one import or delete job.
type Run struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	State      State          `json:"state"`
	Progress   batch.Snapshot `json:"progress"`
	Summary    *Summary       `json:"summary,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
}

// Runs keeps every run of the process in memory.
type Runs struct {
	mu   sync.RWMutex
	runs map[string]*Run
	now  func() time.Time
}

func NewRuns() *Runs {
	return &Runs{
		runs: make(map[string]*Run),
		now:  time.Now,
	}
}

// Create registers an idle run.
func (r *Runs) Create(collection string) Run {
	r.mu.Lock()
	defer r.mu.Unlock()

	run := &Run{
		ID:         uuid.NewString(),
		Collection: collection,
		State:      StateIdle,
		CreatedAt:  r.now().UTC(),
	}
	r.runs[run.ID] = run
	return *run
}

func (r *Runs) Get(id string) (Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return *run, nil
}

func (r *Runs) transition(id string, next State, update func(*Run)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	if !run.State.canMoveTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, run.State, next)
	}
	run.State = next
	if update != nil {
		update(run)
	}
	return nil
}

func (r *Runs) Start(id string) error {
	return r.transition(id, StateRunning, nil)
}

func (r *Runs) Complete(id string, summary Summary) error {
	return r.transition(id, StateCompleted, func(run *Run) {
		finished := r.now().UTC()
		run.Summary = &summary
		run.FinishedAt = &finished
	})
}

func (r *Runs) Fail(id string, summary Summary, cause error) error {
	return r.transition(id, StateFailed, func(run *Run) {
		finished := r.now().UTC()
		run.Summary = &summary
		run.Error = cause.Error()
		run.FinishedAt = &finished
	})
}

// Sink returns a progress sink that records snapshots on the run.
func (r *Runs) Sink(id string) batch.Sink {
	return func(s batch.Snapshot) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if run, ok := r.runs[id]; ok && run.State == StateRunning {
			run.Progress = s
		}
	}
}

// Execute drives a job through the run's lifecycle and returns the job's error.
func (r *Runs) Execute(ctx context.Context, id string, job Job) error {
	if err := r.Start(id); err != nil {
		return err
	}

	err := job.Run(ctx)
	if err != nil {
		slog.Error("Run failed", "run_id", id, "error", err)
		if terr := r.Fail(id, job.Summary(), err); terr != nil {
			slog.Error("Failed to record run failure", "run_id", id, "error", terr)
		}
		return err
	}

	if terr := r.Complete(id, job.Summary()); terr != nil {
		return terr
	}
	slog.Info("Run completed", "run_id", id)
	return nil
}
