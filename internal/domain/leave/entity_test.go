package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationDays(t *testing.T) {
	start := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"end before start", start.Add(-time.Hour), 0},
		{"zero span", start, 0},
		{"half a day", start.Add(12 * time.Hour), 0.5},
		{"two full days", start.Add(48 * time.Hour), 2},
		{"single work day", start.Add(9 * time.Hour), 0.375},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DurationDays(start, tt.end), 1e-9)
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
