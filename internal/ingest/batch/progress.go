package batch

import (
	"fmt"
	"math"
	"time"
)

type ETAState string

const (
	// ETACalculating means there is not enough data for an estimate yet.
	ETACalculating ETAState = "calculating"
	ETAEstimated   ETAState = "estimated"
	// ETAFinishing means every record was processed.
	ETAFinishing ETAState = "finishing"
)

// Snapshot is the progress of a write run after a chunk completed.
type Snapshot struct {
	Processed  int      `json:"processed"`
	Total      int      `json:"total"`
	Percent    int      `json:"percent"`
	ETAState   ETAState `json:"etaState"`
	ETASeconds int64    `json:"etaSeconds,omitempty"`
}

// Sink receives a snapshot after every completed chunk. Snapshots arrive one at a
// time with a non-decreasing Processed count.
type Sink func(Snapshot)

func (s Snapshot) ETA() time.Duration {
	return time.Duration(s.ETASeconds) * time.Second
}

func (s Snapshot) String() string {
	switch s.ETAState {
	case ETAEstimated:
		return fmt.Sprintf("%d/%d (%d%%), ~%s left", s.Processed, s.Total, s.Percent, s.ETA())
	case ETAFinishing:
		return fmt.Sprintf("%d/%d (%d%%), finishing", s.Processed, s.Total, s.Percent)
	default:
		return fmt.Sprintf("%d/%d (%d%%), calculating", s.Processed, s.Total, s.Percent)
	}
}

// Estimate computes the completion percentage and remaining time of a run that
// started at start and has processed records out of total by now.
func Estimate(processed, total int, start, now time.Time) Snapshot {
	snap := Snapshot{
		Processed: processed,
		Total:     total,
		Percent:   percent(processed, total),
		ETAState:  ETACalculating,
	}

	elapsed := now.Sub(start).Seconds()
	if processed <= 0 || elapsed <= 0 {
		return snap
	}

	remaining := total - processed
	if remaining <= 0 {
		snap.ETAState = ETAFinishing
		return snap
	}

	rate := float64(processed) / elapsed
	eta := math.Round(float64(remaining) / rate)
	if math.IsInf(eta, 0) || math.IsNaN(eta) {
		return snap
	}

	snap.ETAState = ETAEstimated
	snap.ETASeconds = int64(eta)
	return snap
}

func percent(processed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(processed) / float64(total)))
	return max(0, min(100, p))
}
