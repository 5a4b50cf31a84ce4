package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_IsValid(t *testing.T) {
	assert.True(t, NewDateRange(date(2026, 7, 1), date(2026, 7, 5)).IsValid())
	assert.False(t, NewDateRange(date(2026, 7, 5), date(2026, 7, 1)).IsValid())
	// Нулевая длительность недопустима
	assert.False(t, NewDateRange(date(2026, 7, 1), date(2026, 7, 1)).IsValid())
}

func TestDateRange_Nights(t *testing.T) {
	assert.Equal(t, 4, NewDateRange(date(2026, 7, 1), date(2026, 7, 5)).Nights())
	assert.Equal(t, 1, NewDateRange(date(2026, 7, 1), date(2026, 7, 2)).Nights())
}

func TestDateRange_Overlaps(t *testing.T) {
	base := NewDateRange(date(2026, 7, 1), date(2026, 7, 5))

	tests := []struct {
		name     string
		other    DateRange
		expected bool
	}{
		{
			name:     "identical ranges overlap",
			other:    NewDateRange(date(2026, 7, 1), date(2026, 7, 5)),
			expected: true,
		},
		{
			name:     "partial overlap at the end",
			other:    NewDateRange(date(2026, 7, 4), date(2026, 7, 8)),
			expected: true,
		},
		{
			name:     "contained range overlaps",
			other:    NewDateRange(date(2026, 7, 2), date(2026, 7, 3)),
			expected: true,
		},
		{
			name: "back to back ranges do not overlap",
			// Выезд 5-го, заезд 5-го: граница исключительная
			other:    NewDateRange(date(2026, 7, 5), date(2026, 7, 9)),
			expected: false,
		},
		{
			name:     "preceding adjacent range does not overlap",
			other:    NewDateRange(date(2026, 6, 27), date(2026, 7, 1)),
			expected: false,
		},
		{
			name:     "disjoint range does not overlap",
			other:    NewDateRange(date(2026, 8, 1), date(2026, 8, 5)),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			// Симметричность
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_ContainsDay(t *testing.T) {
	rng := NewDateRange(date(2026, 7, 1), date(2026, 7, 5))

	assert.True(t, rng.ContainsDay(date(2026, 7, 1)))
	assert.True(t, rng.ContainsDay(date(2026, 7, 4)))
	// День выезда не входит в период
	assert.False(t, rng.ContainsDay(date(2026, 7, 5)))
	assert.False(t, rng.ContainsDay(date(2026, 6, 30)))
}

func TestDateRange_Days(t *testing.T) {
	days := NewDateRange(date(2026, 7, 1), date(2026, 7, 4)).Days()

	require.Len(t, days, 3)
	assert.Equal(t, date(2026, 7, 1), days[0])
	assert.Equal(t, date(2026, 7, 2), days[1])
	assert.Equal(t, date(2026, 7, 3), days[2])
}
