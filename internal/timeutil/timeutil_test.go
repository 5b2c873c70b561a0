package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-07-01", "Asia/Manila")
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	assert.True(t, got.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		timeZone string
	}{
		{"bad format", "07/01/2025", "Asia/Manila"},
		{"empty date", "", "Asia/Manila"},
		{"bad zone", "2025-07-01", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.date, tt.timeZone)
			assert.Error(t, err)
		})
	}
}

func TestParseDateTime_ZoneAware(t *testing.T) {
	got, err := ParseDateTime("2025-07-07T10:00:00", "Asia/Manila")
	require.NoError(t, err)

	// Manila is UTC+8 year-round.
	assert.True(t, got.Equal(time.Date(2025, 7, 7, 2, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestDayWindow_ExtendsEndByOneDay(t *testing.T) {
	start, end, err := DayWindow("2025-07-01", "2025-07-01", "Asia/Manila")
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	assert.True(t, start.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
	assert.True(t, end.Equal(time.Date(2025, 7, 2, 0, 0, 0, 0, loc)))
}

func TestDayWindow_InvalidBounds(t *testing.T) {
	_, _, err := DayWindow("bad", "2025-07-01", "Asia/Manila")
	assert.ErrorContains(t, err, "start_date")

	_, _, err = DayWindow("2025-07-01", "bad", "Asia/Manila")
	assert.ErrorContains(t, err, "end_date")
}

func TestFormatInZone(t *testing.T) {
	instant := time.Date(2025, 7, 7, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mon, 07 Jul 2025 10:00 AM", FormatInZone(instant, "Asia/Manila"))

	// Unknown zone falls back to the instant's own location.
	assert.Equal(t, "Mon, 07 Jul 2025 2:00 AM", FormatInZone(instant, "Nowhere/Nope"))
}
