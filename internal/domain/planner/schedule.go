package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// BuildReviews generates the initial review set for a studied topic.
// One PENDING review is produced per configured interval offset, at
// its nominal date with a [-WindowBefore, +WindowAfter] placement
// window and the difficulty's effort cost.
//
// The second return value reports whether the interval table had no
// offsets for the difficulty and the default table was used instead.
func (p *Params) BuildReviews(
	content *domain.StudyContent,
	intervals domain.ReviewIntervals,
) ([]*domain.Review, bool, error) {
	offsets, usedFallback := p.OffsetsFor(intervals, content.Difficulty)
	effort := p.EffortOf(content.Difficulty)

	reviews := make([]*domain.Review, 0, len(offsets))
	for _, offset := range offsets {
		review, err := p.buildReviewAt(content.UserID, content.ID, content.DateStudied, offset, effort)
		if err != nil {
			return nil, usedFallback, err
		}
		reviews = append(reviews, review)
	}

	return reviews, usedFallback, nil
}

// RegenerateReviews recomputes a content's pending reviews after a
// difficulty or date-studied edit. Reviews whose nominal date falls
// before today are dropped; if nothing lands today or later, a single
// fallback review for tomorrow is produced so the topic never loses
// its schedule. Completed reviews are the caller's to leave alone.
func (p *Params) RegenerateReviews(
	content *domain.StudyContent,
	intervals domain.ReviewIntervals,
	today string,
) ([]*domain.Review, error) {
	generated, _, err := p.BuildReviews(content, intervals)
	if err != nil {
		return nil, err
	}

	reviews := generated[:0]
	for _, review := range generated {
		if review.Date >= today {
			reviews = append(reviews, review)
		}
	}

	if len(reviews) > 0 {
		return reviews, nil
	}

	tomorrow, err := dateutil.AddDays(today, 1)
	if err != nil {
		return nil, err
	}
	windowEnd, err := dateutil.AddDays(tomorrow, p.WindowAfter)
	if err != nil {
		return nil, err
	}

	fallback, err := domain.NewReview(
		content.UserID,
		content.ID,
		tomorrow,
		today,
		windowEnd,
		p.EffortOf(content.Difficulty),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build fallback review: %w", err)
	}

	return []*domain.Review{fallback}, nil
}

// buildReviewAt constructs one review at dateStudied+offset.
func (p *Params) buildReviewAt(
	userID, contentID uuid.UUID,
	dateStudied string,
	offset int,
	effort float64,
) (*domain.Review, error) {
	date, err := dateutil.AddDays(dateStudied, offset)
	if err != nil {
		return nil, err
	}
	windowStart, err := dateutil.AddDays(date, -p.WindowBefore)
	if err != nil {
		return nil, err
	}
	windowEnd, err := dateutil.AddDays(date, p.WindowAfter)
	if err != nil {
		return nil, err
	}

	review, err := domain.NewReview(userID, contentID, date, windowStart, windowEnd, effort)
	if err != nil {
		return nil, fmt.Errorf("failed to build review at offset %d: %w", offset, err)
	}
	return review, nil
}
