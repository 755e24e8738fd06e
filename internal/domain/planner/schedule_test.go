package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiumhq/studium-api/internal/domain"
)

func testContent(t *testing.T, dateStudied string, difficulty domain.Difficulty) *domain.StudyContent {
	t.Helper()
	content, err := domain.NewStudyContent(uuid.New(), uuid.New(), "thermodynamics", dateStudied, difficulty)
	require.NoError(t, err)
	return content
}

func TestBuildReviewsMediumSchedule(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	content := testContent(t, "2024-01-01", domain.DifficultyMedium)

	reviews, usedFallback, err := params.BuildReviews(content, domain.ReviewIntervals{
		domain.DifficultyMedium: {7, 21, 60},
	})
	require.NoError(t, err)
	assert.False(t, usedFallback)
	require.Len(t, reviews, 3)

	expectedDates := []string{"2024-01-08", "2024-01-22", "2024-03-01"}
	for i, review := range reviews {
		assert.Equal(t, expectedDates[i], review.Date)
		assert.Equal(t, expectedDates[i], review.OriginalDate)
		assert.InDelta(t, 1.3, review.Effort, 1e-9)
		assert.Equal(t, domain.ReviewStatusPending, review.Status)
		assert.Equal(t, content.ID, review.ContentID)
		assert.Equal(t, content.UserID, review.UserID)
	}

	// Window is nominal date -1 .. +2.
	assert.Equal(t, "2024-01-07", reviews[0].WindowStart)
	assert.Equal(t, "2024-01-10", reviews[0].WindowEnd)
}

func TestBuildReviewsEffortPerDifficulty(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		difficulty domain.Difficulty
		effort     float64
	}{
		{domain.DifficultyEasy, 1.0},
		{domain.DifficultyMedium, 1.3},
		{domain.DifficultyHard, 1.7},
	}

	for _, tc := range testCases {
		content := testContent(t, "2024-01-01", tc.difficulty)
		reviews, _, err := params.BuildReviews(content, CopyDefaultIntervals())
		require.NoError(t, err)
		require.NotEmpty(t, reviews)
		for _, review := range reviews {
			assert.InDelta(t, tc.effort, review.Effort, 1e-9, "difficulty %s", tc.difficulty)
		}
	}
}

func TestBuildReviewsEmptyIntervalTableFallsBack(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	content := testContent(t, "2024-01-01", domain.DifficultyHard)

	// No offsets configured for hard: the default table applies so a
	// studied topic never silently loses its schedule.
	reviews, usedFallback, err := params.BuildReviews(content, domain.ReviewIntervals{
		domain.DifficultyHard: {},
	})
	require.NoError(t, err)
	assert.True(t, usedFallback)
	assert.Len(t, reviews, len(DefaultIntervals[domain.DifficultyHard]))
	assert.Equal(t, "2024-01-03", reviews[0].Date) // studied + 2
}

func TestRegenerateReviewsDropsPastDates(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	content := testContent(t, "2024-01-01", domain.DifficultyMedium)

	reviews, err := params.RegenerateReviews(content, domain.ReviewIntervals{
		domain.DifficultyMedium: {7, 21, 60},
	}, "2024-01-15")
	require.NoError(t, err)

	// The day-7 review (2024-01-08) is in the past and dropped.
	require.Len(t, reviews, 2)
	assert.Equal(t, "2024-01-22", reviews[0].Date)
	assert.Equal(t, "2024-03-01", reviews[1].Date)
}

func TestRegenerateReviewsKeepsTodaysReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	content := testContent(t, "2024-01-01", domain.DifficultyMedium)

	reviews, err := params.RegenerateReviews(content, domain.ReviewIntervals{
		domain.DifficultyMedium: {7},
	}, "2024-01-08")
	require.NoError(t, err)

	require.Len(t, reviews, 1)
	assert.Equal(t, "2024-01-08", reviews[0].Date)
}

func TestRegenerateReviewsFallbackWhenAllPast(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	content := testContent(t, "2024-01-01", domain.DifficultyHard)

	reviews, err := params.RegenerateReviews(content, domain.ReviewIntervals{
		domain.DifficultyHard: {2, 7},
	}, "2024-06-01")
	require.NoError(t, err)

	// Everything landed in the past, so a single review for tomorrow
	// keeps the topic on the schedule.
	require.Len(t, reviews, 1)
	assert.Equal(t, "2024-06-02", reviews[0].Date)
	assert.Equal(t, "2024-06-01", reviews[0].WindowStart)
	assert.Equal(t, "2024-06-04", reviews[0].WindowEnd)
	assert.InDelta(t, 1.7, reviews[0].Effort, 1e-9)
}

func TestBuildReviewsInvalidStudiedDate(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	content := testContent(t, "2024-01-01", domain.DifficultyEasy)
	content.DateStudied = "01/01/2024"

	_, _, err := params.BuildReviews(content, CopyDefaultIntervals())
	assert.Error(t, err)
}
