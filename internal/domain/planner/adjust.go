package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// Window shape for stretched and reinforcement reviews. These differ
// from the factory window: a stretched review gets an extra trailing
// day of slack, a reinforcement review is pinned close to tomorrow.
const (
	stretchWindowAfter       = 3
	reinforcementWindowAfter = 1
)

// BuildReinforcement constructs the extra review inserted after a
// "forgot" outcome: dated tomorrow, always at the hard-tier effort
// cost, windowed [today, tomorrow+1].
func (p *Params) BuildReinforcement(
	userID, contentID uuid.UUID,
	today string,
) (*domain.Review, error) {
	tomorrow, err := dateutil.AddDays(today, 1)
	if err != nil {
		return nil, err
	}
	windowEnd, err := dateutil.AddDays(tomorrow, reinforcementWindowAfter)
	if err != nil {
		return nil, err
	}

	review, err := domain.NewReview(
		userID,
		contentID,
		tomorrow,
		today,
		windowEnd,
		p.ReinforcementEffort,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build reinforcement review: %w", err)
	}
	return review, nil
}

// StretchAmount returns how many days a pending review moves outward
// after a "remembered" outcome: a fifth of its remaining lead time,
// but never less than the floor. This is a deliberate rough heuristic,
// not an SM-2 style recalculation.
func (p *Params) StretchAmount(daysUntilDue int) int {
	stretch := int(math.Ceil(float64(daysUntilDue) * p.StretchFraction))
	if stretch < p.StretchMinDays {
		stretch = p.StretchMinDays
	}
	return stretch
}

// StretchReview pushes one pending review outward after a "remembered"
// outcome, rebasing its window and original date on the new date.
// The stretch amount is always positive, so repeated applications only
// ever move dates forward.
func (p *Params) StretchReview(review *domain.Review, today string) error {
	if !review.IsPending() {
		return domain.ErrReviewFinalized
	}

	daysUntilDue, err := dateutil.DaysDiff(today, review.Date)
	if err != nil {
		return err
	}

	newDate, err := dateutil.AddDays(review.Date, p.StretchAmount(daysUntilDue))
	if err != nil {
		return err
	}
	windowStart, err := dateutil.AddDays(newDate, -p.WindowBefore)
	if err != nil {
		return err
	}
	windowEnd, err := dateutil.AddDays(newDate, stretchWindowAfter)
	if err != nil {
		return err
	}

	review.Date = newDate
	review.OriginalDate = newDate
	review.WindowStart = windowStart
	review.WindowEnd = windowEnd
	review.UpdatedAt = time.Now().UTC()
	return nil
}

// HasReviewDueBy reports whether any of the reviews is scheduled on or
// before the given date. Used to decide whether a "forgot" outcome
// needs a reinforcement insert at all.
func HasReviewDueBy(reviews []*domain.Review, date string) bool {
	for _, review := range reviews {
		if review.Date <= date {
			return true
		}
	}
	return false
}
