package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateString_Time(t *testing.T) {
	d := DateString("2026-07-01")

	parsed, err := d.Time()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestDateString_InvalidFormats(t *testing.T) {
	tests := []string{"", "2026-7-1", "01-07-2026", "2026/07/01", "2026-13-01", "not-a-date"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := DateString(raw).Time()
			assert.ErrorIs(t, err, ErrInvalidDateString)

			assert.ErrorIs(t, DateString(raw).Validate(), ErrInvalidDateString)
		})
	}
}

func TestNewDateString_DropsTime(t *testing.T) {
	d := NewDateString(time.Date(2026, 7, 1, 15, 30, 45, 0, time.UTC))

	assert.Equal(t, DateString("2026-07-01"), d)
}

func TestNewDateStringFromString(t *testing.T) {
	d, err := NewDateStringFromString("2026-07-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", d.String())

	_, err = NewDateStringFromString("bogus")
	assert.ErrorIs(t, err, ErrInvalidDateString)
}
