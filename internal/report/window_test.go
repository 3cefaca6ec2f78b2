package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	w := LastDays(30, now)
	assert.Equal(t, now, w.Until)
	assert.Equal(t, now.AddDate(0, 0, -30), w.Since)
	assert.Equal(t, 30, w.Days())
}

func TestIsPresetDays(t *testing.T) {
	for _, n := range []int{1, 7, 30, 90, 180, 365} {
		assert.True(t, IsPresetDays(n), "preset %d", n)
	}
	for _, n := range []int{0, 2, 14, 60, 1000, -7} {
		assert.False(t, IsPresetDays(n), "non-preset %d", n)
	}
}

func TestBetween_SwapsInvertedRange(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	w := Between(to, from)
	assert.Equal(t, from, w.Since)
	assert.Equal(t, to, w.Until)
}

func TestWindow_ContainsHalfOpen(t *testing.T) {
	w := Window{
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, w.Contains(w.Since), "lower bound is inclusive")
	assert.False(t, w.Contains(w.Until), "upper bound is exclusive")
	assert.True(t, w.Contains(w.Until.Add(-time.Second)))
	assert.False(t, w.Contains(w.Since.Add(-time.Second)))
}
