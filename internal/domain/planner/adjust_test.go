package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiumhq/studium-api/internal/domain"
)

func TestBuildReinforcement(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	userID := uuid.New()
	contentID := uuid.New()

	review, err := params.BuildReinforcement(userID, contentID, "2024-01-10")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-11", review.Date)
	assert.Equal(t, "2024-01-11", review.OriginalDate)
	assert.Equal(t, "2024-01-10", review.WindowStart)
	assert.Equal(t, "2024-01-12", review.WindowEnd)
	assert.InDelta(t, 1.7, review.Effort, 1e-9)
	assert.Equal(t, domain.ReviewStatusPending, review.Status)
	assert.Equal(t, userID, review.UserID)
	assert.Equal(t, contentID, review.ContentID)
}

func TestStretchAmount(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		daysUntilDue int
		expected     int
	}{
		{0, 2},  // floor applies
		{1, 2},  // ceil(0.2) = 1, floor applies
		{5, 2},  // ceil(1.0) = 1, floor applies
		{10, 2}, // ceil(2.0) = 2
		{11, 3}, // ceil(2.2) = 3
		{30, 6},
		{-3, 2}, // overdue reviews still move forward
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, params.StretchAmount(tc.daysUntilDue),
			"daysUntilDue=%d", tc.daysUntilDue)
	}
}

func TestStretchReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// Due in 10 days: stretch by ceil(10 * 0.2) = 2.
	review := pendingReview(t, "2024-01-20", "2024-01-19", "2024-01-22", 1.3)
	review.OriginalDate = "2024-01-20"

	err := params.StretchReview(review, "2024-01-10")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-22", review.Date)
	assert.Equal(t, "2024-01-22", review.OriginalDate)
	assert.Equal(t, "2024-01-21", review.WindowStart)
	assert.Equal(t, "2024-01-25", review.WindowEnd)
}

func TestStretchReviewRepeatedAlwaysMovesForward(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	today := "2024-01-10"

	review := pendingReview(t, "2024-01-11", "2024-01-10", "2024-01-13", 1.0)

	prev := review.Date
	for i := 0; i < 5; i++ {
		require.NoError(t, params.StretchReview(review, today))
		assert.Greater(t, review.Date, prev, "iteration %d", i)
		prev = review.Date
	}
}

func TestStretchReviewRejectsFinalized(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	review := pendingReview(t, "2024-01-20", "2024-01-19", "2024-01-22", 1.0)
	require.NoError(t, review.Complete(domain.ReviewFeedbackRemembered))

	err := params.StretchReview(review, "2024-01-10")
	assert.ErrorIs(t, err, domain.ErrReviewFinalized)
}

func TestHasReviewDueBy(t *testing.T) {
	t.Parallel()

	reviews := []*domain.Review{
		pendingReview(t, "2024-01-15", "2024-01-14", "2024-01-17", 1.0),
		pendingReview(t, "2024-01-20", "2024-01-19", "2024-01-22", 1.0),
	}

	assert.False(t, HasReviewDueBy(reviews, "2024-01-14"))
	assert.True(t, HasReviewDueBy(reviews, "2024-01-15"))
	assert.True(t, HasReviewDueBy(reviews, "2024-01-18"))
	assert.False(t, HasReviewDueBy(nil, "2024-01-15"))
}
