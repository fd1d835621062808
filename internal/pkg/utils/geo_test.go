package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	t.Run("identical points are zero meters apart", func(t *testing.T) {
		d := CalculateHaversineDistance(25.0330, 121.5654, 25.0330, 121.5654)
		assert.Zero(t, d)
	})

	t.Run("taipei 101 to taipei main station", func(t *testing.T) {
		// Taipei 101: 25.0330, 121.5654. Taipei Main Station: 25.0478, 121.5170.
		d := CalculateHaversineDistance(25.0330, 121.5654, 25.0478, 121.5170)
		assert.InDelta(t, 5150, d, 200)
	})

	t.Run("small offset is a short distance", func(t *testing.T) {
		// Roughly 111 meters per 0.001 degree of latitude.
		d := CalculateHaversineDistance(25.0330, 121.5654, 25.0340, 121.5654)
		assert.InDelta(t, 111, d, 5)
	})

	t.Run("symmetric in its arguments", func(t *testing.T) {
		d1 := CalculateHaversineDistance(25.0330, 121.5654, 24.9936, 121.3010)
		d2 := CalculateHaversineDistance(24.9936, 121.3010, 25.0330, 121.5654)
		assert.InDelta(t, d1, d2, 0.0001)
	})
}

func TestWithinFence(t *testing.T) {
	t.Run("inside", func(t *testing.T) {
		assert.True(t, WithinFence(99, 100))
	})

	t.Run("boundary counts as inside", func(t *testing.T) {
		assert.True(t, WithinFence(100, 100))
	})

	t.Run("outside", func(t *testing.T) {
		assert.False(t, WithinFence(100.01, 100))
	})

	t.Run("zero radius falls back to the default fence", func(t *testing.T) {
		assert.True(t, WithinFence(DefaultFenceRadiusMeters, 0))
		assert.False(t, WithinFence(DefaultFenceRadiusMeters+1, 0))
	})
}
