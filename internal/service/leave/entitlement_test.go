package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestMonthsOfService(t *testing.T) {
	t.Run("same day is zero", func(t *testing.T) {
		assert.Equal(t, 0, monthsOfService(date(2026, 1, 15), date(2026, 1, 15)))
	})

	t.Run("day before the monthly anniversary", func(t *testing.T) {
		assert.Equal(t, 5, monthsOfService(date(2025, 8, 15), date(2026, 2, 14)))
	})

	t.Run("monthly anniversary completes the month", func(t *testing.T) {
		assert.Equal(t, 6, monthsOfService(date(2025, 8, 15), date(2026, 2, 15)))
	})

	t.Run("hire date in the future clamps to zero", func(t *testing.T) {
		assert.Equal(t, 0, monthsOfService(date(2027, 1, 1), date(2026, 1, 1)))
	})
}

func TestCalculateEntitlement(t *testing.T) {
	asOf := date(2026, 6, 1)

	cases := []struct {
		name     string
		hireDate time.Time
		wantDays float64
	}{
		{"under six months", date(2026, 1, 2), 0},
		{"six months", date(2025, 12, 1), 3},
		{"eleven months", date(2025, 7, 1), 3},
		{"one year", date(2025, 6, 1), 7},
		{"two years", date(2024, 6, 1), 10},
		{"three years", date(2023, 6, 1), 14},
		{"five years", date(2021, 6, 1), 15},
		{"nine years", date(2017, 6, 1), 15},
		{"ten years", date(2016, 6, 1), 15},
		{"eleven years", date(2015, 6, 1), 16},
		{"twenty years", date(2006, 6, 1), 25},
		{"twenty-five years reaches the cap", date(2001, 6, 1), 30},
		{"forty years stays capped", date(1986, 6, 1), 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ent := CalculateEntitlement(tc.hireDate, asOf)
			assert.Equal(t, tc.wantDays, ent.Days)
			assert.Equal(t, tc.wantDays*8, ent.Hours)
			assert.NotEmpty(t, ent.Description)
		})
	}
}

func TestCalculateEntitlementIsIdempotent(t *testing.T) {
	hire := date(2020, 3, 10)
	asOf := date(2026, 3, 10)

	first := CalculateEntitlement(hire, asOf)
	second := CalculateEntitlement(hire, asOf)
	assert.Equal(t, first, second)
}
