package dateutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDays(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		date     string
		days     int
		expected string
	}{
		{
			name:     "simple forward offset",
			date:     "2024-01-01",
			days:     7,
			expected: "2024-01-08",
		},
		{
			name:     "offset crossing a month boundary",
			date:     "2024-01-22",
			days:     10,
			expected: "2024-02-01",
		},
		{
			name:     "offset crossing a leap day",
			date:     "2024-02-28",
			days:     2,
			expected: "2024-03-01",
		},
		{
			name:     "zero offset is identity",
			date:     "2024-06-15",
			days:     0,
			expected: "2024-06-15",
		},
		{
			name:     "negative offset moves backward",
			date:     "2024-03-01",
			days:     -1,
			expected: "2024-02-29",
		},
		{
			name:     "offset crossing a year boundary",
			date:     "2023-12-25",
			days:     10,
			expected: "2024-01-04",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := AddDays(tc.date, tc.days)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAddDaysInvalidInput(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "not-a-date", "2024-13-01", "2024-02-30", "01/02/2024"} {
		_, err := AddDays(bad, 1)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "input %q", bad)
	}
}

func TestDayOfWeek(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		date     string
		expected int
	}{
		{"2024-01-07", 0}, // Sunday
		{"2024-01-08", 1}, // Monday
		{"2024-01-13", 6}, // Saturday
	}

	for _, tc := range testCases {
		got, err := DayOfWeek(tc.date)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "date %s", tc.date)
	}
}

func TestDaysDiff(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"one week apart", "2024-01-01", "2024-01-08", 7},
		{"negative when end precedes start", "2024-01-08", "2024-01-01", -7},
		{"across leap day", "2024-02-27", "2024-03-01", 3},
		{"across year boundary", "2023-12-30", "2024-01-02", 3},
		// Spans the US spring-forward (2024-03-10) and fall-back
		// (2024-11-03) transitions; noon anchoring keeps the count exact.
		{"across spring DST transition", "2024-03-09", "2024-03-11", 2},
		{"across fall DST transition", "2024-11-02", "2024-11-04", 2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DaysDiff(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDaysDiffInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := DaysDiff("garbage", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = DaysDiff("2024-01-01", "garbage")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Valid("2024-01-01"))
	assert.False(t, Valid("2024-1-1"))
	assert.False(t, Valid(""))
}
