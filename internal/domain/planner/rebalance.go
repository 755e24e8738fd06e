package planner

import (
	"sort"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// Assignment is one placement decision from a rebalance run. Every
// pending review receives exactly one Assignment; Moved marks the ones
// whose date actually changed, and Fallback marks placements that had
// to leave the review's window.
type Assignment struct {
	Review   *domain.Review
	Date     string
	Moved    bool
	Fallback bool
}

// scoredReview pairs a review with its placement priority.
type scoredReview struct {
	review *domain.Review
	score  float64
}

// Rebalance assigns a concrete date to every pending review so that
// per-day load stays within the capacity budget where possible.
//
// Reviews are placed greedily in descending score order, where
// score = overdueDays*OverdueWeight + effort*EffortWeight +
// DueTodayBonus for items due today or earlier. Placement prefers the
// first date in the review's window (clamped to start no earlier than
// today) whose accumulated load plus the review's effort stays within
// capacity*CapacitySlack. When no in-window date fits, the scan
// extends FallbackExtraDays past the window and picks the date with
// the lowest load-to-capacity ratio, so reviews are never dropped
// under backlog pressure.
//
// The function is pure: it never mutates the input reviews. Callers
// apply the Moved assignments.
func (p *Params) Rebalance(
	pending []*domain.Review,
	settings *domain.UserSettings,
	exceptions []*domain.DayException,
	today string,
) ([]Assignment, error) {
	if len(pending) == 0 {
		return nil, nil
	}

	scored := make([]scoredReview, 0, len(pending))
	for _, review := range pending {
		score, err := p.placementScore(review, today)
		if err != nil {
			return nil, err
		}
		scored = append(scored, scoredReview{review: review, score: score})
	}

	// Stable sort keeps input order among equal scores, which makes
	// contention between identical reviews deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	dailyLoad := make(map[string]float64)
	assignments := make([]Assignment, 0, len(scored))

	for _, sr := range scored {
		assignment, err := p.place(sr.review, settings, exceptions, today, dailyLoad)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

// placementScore ranks a review for placement priority. Overdue days
// dominate, effort breaks ties among equally overdue items, and
// anything due today or earlier gets a flat bonus.
func (p *Params) placementScore(review *domain.Review, today string) (float64, error) {
	pastWindow, err := dateutil.DaysDiff(review.WindowEnd, today)
	if err != nil {
		return 0, err
	}
	overdueDays := 0
	if pastWindow > 0 {
		overdueDays = pastWindow
	}

	daysUntilDue, err := dateutil.DaysDiff(today, review.Date)
	if err != nil {
		return 0, err
	}

	score := float64(overdueDays)*p.OverdueWeight + review.Effort*p.EffortWeight
	if daysUntilDue <= 0 {
		score += p.DueTodayBonus
	}
	return score, nil
}

// place chooses a date for one review against the running load map.
func (p *Params) place(
	review *domain.Review,
	settings *domain.UserSettings,
	exceptions []*domain.DayException,
	today string,
	dailyLoad map[string]float64,
) (Assignment, error) {
	windowStart := review.WindowStart
	if windowStart < today {
		windowStart = today
	}
	windowEnd := review.WindowEnd
	if windowEnd < today {
		windowEnd = today
	}

	windowDays, err := dateutil.DaysDiff(windowStart, windowEnd)
	if err != nil {
		return Assignment{}, err
	}

	// Primary pass: first in-window date with room under slacked capacity.
	for i := 0; i <= windowDays; i++ {
		candidate, err := dateutil.AddDays(windowStart, i)
		if err != nil {
			return Assignment{}, err
		}
		capacity, err := p.DailyCapacity(candidate, settings, exceptions)
		if err != nil {
			return Assignment{}, err
		}
		if dailyLoad[candidate]+review.Effort <= capacity*p.CapacitySlack {
			dailyLoad[candidate] += review.Effort
			return Assignment{
				Review: review,
				Date:   candidate,
				Moved:  candidate != review.Date,
			}, nil
		}
	}

	// Fallback: extend the scan and take the least relatively loaded day.
	scanDays := windowDays + p.FallbackExtraDays
	bestDate := ""
	bestRatio := 0.0
	for i := 0; i <= scanDays; i++ {
		candidate, err := dateutil.AddDays(windowStart, i)
		if err != nil {
			return Assignment{}, err
		}
		capacity, err := p.DailyCapacity(candidate, settings, exceptions)
		if err != nil {
			return Assignment{}, err
		}
		capacityPoints := capacity * p.CapacitySlack
		if capacityPoints < 0.1 {
			capacityPoints = 0.1
		}
		ratio := dailyLoad[candidate] / capacityPoints
		if bestDate == "" || ratio < bestRatio {
			bestDate = candidate
			bestRatio = ratio
		}
	}

	dailyLoad[bestDate] += review.Effort
	return Assignment{
		Review:   review,
		Date:     bestDate,
		Moved:    bestDate != review.Date,
		Fallback: true,
	}, nil
}
