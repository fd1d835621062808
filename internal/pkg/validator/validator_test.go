package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-16")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("16/03/2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-13-01")
	assert.False(t, ok)
}

func TestIsValidTimestamp(t *testing.T) {
	ts, ok := IsValidTimestamp("2026-03-16T09:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC), ts)

	_, ok = IsValidTimestamp("2026-03-16 09:00:00")
	assert.False(t, ok)
}

func TestCoordinateBounds(t *testing.T) {
	assert.True(t, IsValidLatitude(0))
	assert.True(t, IsValidLatitude(90))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.0001))
	assert.False(t, IsValidLatitude(-91))

	assert.True(t, IsValidLongitude(180))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(180.5))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "latitude", Message: "out of range"},
	}

	assert.Equal(t, "name: is required; latitude: out of range", errs.Error())
	assert.Equal(t, map[string]string{
		"name":     "is required",
		"latitude": "out of range",
	}, errs.ToMap())
}
