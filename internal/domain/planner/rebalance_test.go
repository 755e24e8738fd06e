package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiumhq/studium-api/internal/domain"
)

func pendingReview(t *testing.T, date, windowStart, windowEnd string, effort float64) *domain.Review {
	t.Helper()
	review, err := domain.NewReview(uuid.New(), uuid.New(), date, windowStart, windowEnd, effort)
	require.NoError(t, err)
	return review
}

func countOnOrBefore(assignments []Assignment, date string) int {
	n := 0
	for _, a := range assignments {
		if a.Date <= date {
			n++
		}
	}
	return n
}

func TestRebalanceEmptyInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	assignments, err := params.Rebalance(nil, testSettings(5), nil, "2024-01-10")
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestRebalanceEveryReviewPlacedExactlyOnce(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	var pending []*domain.Review
	for i := 0; i < 25; i++ {
		pending = append(pending, pendingReview(t, "2024-01-11", "2024-01-10", "2024-01-13", 1.3))
	}

	assignments, err := params.Rebalance(pending, testSettings(5), nil, today)
	require.NoError(t, err)
	require.Len(t, assignments, len(pending))

	seen := make(map[uuid.UUID]bool)
	for _, a := range assignments {
		assert.False(t, seen[a.Review.ID], "review assigned twice")
		seen[a.Review.ID] = true
		assert.NotEmpty(t, a.Date)
	}
	assert.Len(t, seen, len(pending))
}

func TestRebalanceKeepsFittingReviewInPlace(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	review := pendingReview(t, "2024-01-11", "2024-01-10", "2024-01-13", 1.0)

	assignments, err := params.Rebalance([]*domain.Review{review}, testSettings(5), nil, today)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	// Window start is today, capacity is wide open: the first candidate
	// date is today, which differs from the nominal date.
	assert.Equal(t, "2024-01-10", assignments[0].Date)
	assert.True(t, assignments[0].Moved)
	assert.False(t, assignments[0].Fallback)

	// Inputs are never mutated.
	assert.Equal(t, "2024-01-11", review.Date)
}

func TestRebalancePlacementStaysInWindowWhenRoomExists(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	var pending []*domain.Review
	for i := 0; i < 8; i++ {
		pending = append(pending, pendingReview(t, "2024-01-11", "2024-01-11", "2024-01-14", 1.0))
	}

	assignments, err := params.Rebalance(pending, testSettings(5), nil, today)
	require.NoError(t, err)

	// 6.5 effort points per day over a 4-day window: all 8 fit inside
	// the window with no fallback placements.
	for _, a := range assignments {
		assert.False(t, a.Fallback)
		assert.GreaterOrEqual(t, a.Date, "2024-01-11")
		assert.LessOrEqual(t, a.Date, "2024-01-14")
	}
}

func TestRebalanceOverdueWinsContendedSlot(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	// Identical effort; one review's window closed two days ago.
	overdue := pendingReview(t, "2024-01-07", "2024-01-06", "2024-01-08", 1.0)
	fresh := pendingReview(t, "2024-01-10", "2024-01-09", "2024-01-10", 1.0)

	// Capacity 1.0 → 1.3 effort points: one review per day.
	assignments, err := params.Rebalance(
		[]*domain.Review{fresh, overdue},
		testSettings(1),
		nil,
		today,
	)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	byID := make(map[uuid.UUID]Assignment)
	for _, a := range assignments {
		byID[a.Review.ID] = a
	}

	// The overdue review is processed first and takes today; the fresh
	// one is displaced past it.
	assert.Equal(t, today, byID[overdue.ID].Date)
	assert.False(t, byID[overdue.ID].Fallback)
	assert.Greater(t, byID[fresh.ID].Date, today)
	assert.True(t, byID[fresh.ID].Fallback)
}

func TestRebalanceSingleDayContention(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	// Ten unit-effort reviews all windowed on one day with capacity 5:
	// 6.5 effort points admit exactly six before fallback spreads the
	// rest over the two adjacent days.
	var pending []*domain.Review
	for i := 0; i < 10; i++ {
		pending = append(pending, pendingReview(t, today, today, today, 1.0))
	}

	assignments, err := params.Rebalance(pending, testSettings(5), nil, today)
	require.NoError(t, err)

	perDay := make(map[string]int)
	fallbacks := 0
	for _, a := range assignments {
		perDay[a.Date]++
		if a.Fallback {
			fallbacks++
		}
	}

	assert.Equal(t, 6, perDay["2024-01-10"])
	assert.Equal(t, 2, perDay["2024-01-11"])
	assert.Equal(t, 2, perDay["2024-01-12"])
	assert.Equal(t, 4, fallbacks)
}

func TestRebalanceRaisingDailyLimitNeverDelaysPlacements(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	makeBacklog := func() []*domain.Review {
		var pending []*domain.Review
		for i := 0; i < 8; i++ {
			pending = append(pending, pendingReview(t, today, today, today, 1.0))
		}
		return pending
	}

	lowAssignments, err := params.Rebalance(makeBacklog(), testSettings(2), nil, today)
	require.NoError(t, err)
	highAssignments, err := params.Rebalance(makeBacklog(), testSettings(4), nil, today)
	require.NoError(t, err)

	for _, day := range []string{"2024-01-10", "2024-01-11", "2024-01-12"} {
		assert.GreaterOrEqual(t,
			countOnOrBefore(highAssignments, day),
			countOnOrBefore(lowAssignments, day),
			"cumulative placements through %s", day)
	}
}

func TestRebalanceClampsWindowToToday(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	stale := pendingReview(t, "2024-01-02", "2024-01-01", "2024-01-04", 1.7)

	assignments, err := params.Rebalance([]*domain.Review{stale}, testSettings(5), nil, today)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	// Nothing is ever scheduled in the past.
	assert.GreaterOrEqual(t, assignments[0].Date, today)
	assert.True(t, assignments[0].Moved)
}

func TestRebalanceZeroCapacityStillPlaces(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	settings := testSettings(5)
	exceptions := []*domain.DayException{}
	for _, date := range []string{"2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13", "2024-01-14"} {
		exceptions = append(exceptions, &domain.DayException{
			ID:                 uuid.New(),
			UserID:             settings.UserID,
			Date:               date,
			Type:               domain.DayExceptionUnavailable,
			CapacityMultiplier: 0,
		})
	}

	review := pendingReview(t, "2024-01-10", "2024-01-10", "2024-01-12", 1.0)

	assignments, err := params.Rebalance([]*domain.Review{review}, settings, exceptions, today)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	// Capacity is advisory: under a fully blocked week the review is
	// still placed on the least-bad day rather than dropped.
	assert.True(t, assignments[0].Fallback)
	assert.NotEmpty(t, assignments[0].Date)
}
