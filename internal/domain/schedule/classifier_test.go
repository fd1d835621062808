package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSchedule() *WorkSchedule {
	return &WorkSchedule{
		Name:               "standard",
		WorkStartTime:      time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		WorkEndTime:        time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
		StandardWorkHours:  8,
		LunchBreakMinutes:  60,
		GracePeriodMinutes: 10,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 16, hour, minute, 0, 0, time.UTC)
}

func TestClassifyCheckIn(t *testing.T) {
	ws := testSchedule()

	t.Run("on time", func(t *testing.T) {
		result := ws.ClassifyCheckIn(at(8, 55))
		assert.False(t, result.IsLate)
		assert.Zero(t, result.LateMinutes)
	})

	t.Run("inside grace period", func(t *testing.T) {
		result := ws.ClassifyCheckIn(at(9, 9))
		assert.False(t, result.IsLate)
	})

	t.Run("grace deadline itself is not late", func(t *testing.T) {
		result := ws.ClassifyCheckIn(at(9, 10))
		assert.False(t, result.IsLate)
	})

	t.Run("past the grace deadline", func(t *testing.T) {
		result := ws.ClassifyCheckIn(at(9, 11))
		assert.True(t, result.IsLate)
		// Lateness is measured from the nominal start, not the deadline.
		assert.Equal(t, 11, result.LateMinutes)
	})

	t.Run("nil schedule skips classification", func(t *testing.T) {
		var missing *WorkSchedule
		result := missing.ClassifyCheckIn(at(12, 0))
		assert.False(t, result.IsLate)
	})
}

func TestClassifyCheckOut(t *testing.T) {
	ws := testSchedule()

	t.Run("after the scheduled end", func(t *testing.T) {
		result := ws.ClassifyCheckOut(at(18, 30))
		assert.False(t, result.IsEarly)
	})

	t.Run("scheduled end itself is not early", func(t *testing.T) {
		result := ws.ClassifyCheckOut(at(18, 0))
		assert.False(t, result.IsEarly)
	})

	t.Run("before the scheduled end", func(t *testing.T) {
		result := ws.ClassifyCheckOut(at(17, 15))
		assert.True(t, result.IsEarly)
		assert.Equal(t, 45, result.EarlyMinutes)
	})

	t.Run("nil schedule skips classification", func(t *testing.T) {
		var missing *WorkSchedule
		result := missing.ClassifyCheckOut(at(12, 0))
		assert.False(t, result.IsEarly)
	})
}
