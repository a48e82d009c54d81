package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		processed int
		total     int
		elapsed   time.Duration
		want      Snapshot
	}{
		{
			name:      "nothing processed",
			processed: 0, total: 100, elapsed: 5 * time.Second,
			want: Snapshot{Processed: 0, Total: 100, Percent: 0, ETAState: ETACalculating},
		},
		{
			name:      "no time elapsed",
			processed: 500, total: 1203, elapsed: 0,
			want: Snapshot{Processed: 500, Total: 1203, Percent: 42, ETAState: ETACalculating},
		},
		{
			name:      "clock went backwards",
			processed: 10, total: 100, elapsed: -time.Second,
			want: Snapshot{Processed: 10, Total: 100, Percent: 10, ETAState: ETACalculating},
		},
		{
			name:      "estimated",
			processed: 250, total: 1000, elapsed: 10 * time.Second,
			want: Snapshot{Processed: 250, Total: 1000, Percent: 25, ETAState: ETAEstimated, ETASeconds: 30},
		},
		{
			name:      "rounded estimate",
			processed: 3, total: 10, elapsed: 2 * time.Second,
			want: Snapshot{Processed: 3, Total: 10, Percent: 30, ETAState: ETAEstimated, ETASeconds: 5},
		},
		{
			name:      "finishing",
			processed: 1203, total: 1203, elapsed: 4 * time.Second,
			want: Snapshot{Processed: 1203, Total: 1203, Percent: 100, ETAState: ETAFinishing},
		},
		{
			name:      "zero total",
			processed: 0, total: 0, elapsed: time.Second,
			want: Snapshot{Processed: 0, Total: 0, Percent: 0, ETAState: ETACalculating},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.processed, tt.total, start, start.Add(tt.elapsed))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimate_PercentIsClamped(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 100, Estimate(150, 100, now, now.Add(time.Second)).Percent)
	assert.Equal(t, 0, Estimate(-5, 100, now, now.Add(time.Second)).Percent)
}

func TestSnapshot_String(t *testing.T) {
	assert.Equal(t, "250/1000 (25%), ~30s left",
		Snapshot{Processed: 250, Total: 1000, Percent: 25, ETAState: ETAEstimated, ETASeconds: 30}.String())
	assert.Equal(t, "1/2 (50%), calculating",
		Snapshot{Processed: 1, Total: 2, Percent: 50, ETAState: ETACalculating}.String())
	assert.Equal(t, "2/2 (100%), finishing",
		Snapshot{Processed: 2, Total: 2, Percent: 100, ETAState: ETAFinishing}.String())
}
