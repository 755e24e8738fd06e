package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiumhq/studium-api/internal/domain"
)

func testSettings(dailyLimit float64) *domain.UserSettings {
	return &domain.UserSettings{
		UserID:     uuid.New(),
		DailyLimit: dailyLimit,
		Intervals:  CopyDefaultIntervals(),
		PaceMode:   domain.PaceModeNormal,
	}
}

func TestDailyCapacity(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// 2024-01-10 is a Wednesday (weekday 3).
	const wednesday = "2024-01-10"

	testCases := []struct {
		name      string
		pace      domain.PaceMode
		heavyDays []int
		exception *domain.DayException
		expected  float64
	}{
		{
			name:     "plain weekday at normal pace",
			pace:     domain.PaceModeNormal,
			expected: 5,
		},
		{
			name:     "faster pace raises capacity",
			pace:     domain.PaceModeFaster,
			expected: 6, // 5 * 1.2
		},
		{
			name:     "slower pace lowers capacity",
			pace:     domain.PaceModeSlower,
			expected: 4, // 5 * 0.8
		},
		{
			name:      "weekly heavy day",
			pace:      domain.PaceModeNormal,
			heavyDays: []int{3},
			expected:  3, // 5 * 0.6
		},
		{
			name: "exception multiplier alone",
			pace: domain.PaceModeNormal,
			exception: &domain.DayException{
				ID:                 uuid.New(),
				UserID:             uuid.New(),
				Date:               wednesday,
				Type:               domain.DayExceptionHeavy,
				CapacityMultiplier: 0.4,
			},
			expected: 2, // 5 * 0.4
		},
		{
			name:      "heavy day, slower pace and exception all stack",
			pace:      domain.PaceModeSlower,
			heavyDays: []int{3},
			exception: &domain.DayException{
				ID:                 uuid.New(),
				UserID:             uuid.New(),
				Date:               wednesday,
				Type:               domain.DayExceptionExam,
				CapacityMultiplier: 0.5,
			},
			expected: 1.2, // 5 * 0.6 * 0.8 * 0.5
		},
		{
			name:      "unavailable day floors at zero",
			pace:      domain.PaceModeNormal,
			heavyDays: []int{3},
			exception: &domain.DayException{
				ID:                 uuid.New(),
				UserID:             uuid.New(),
				Date:               wednesday,
				Type:               domain.DayExceptionUnavailable,
				CapacityMultiplier: 0,
			},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			settings := testSettings(5)
			settings.PaceMode = tc.pace
			settings.HeavyDays = tc.heavyDays

			var exceptions []*domain.DayException
			if tc.exception != nil {
				exceptions = append(exceptions, tc.exception)
			}

			got, err := params.DailyCapacity(wednesday, settings, exceptions)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestDailyCapacityExceptionOnOtherDateIgnored(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	settings := testSettings(5)

	exceptions := []*domain.DayException{{
		ID:                 uuid.New(),
		UserID:             settings.UserID,
		Date:               "2024-01-11",
		Type:               domain.DayExceptionHeavy,
		CapacityMultiplier: 0.4,
	}}

	got, err := params.DailyCapacity("2024-01-10", settings, exceptions)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestDailyCapacityInvalidDate(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	_, err := params.DailyCapacity("bogus", testSettings(5), nil)
	assert.Error(t, err)
}
