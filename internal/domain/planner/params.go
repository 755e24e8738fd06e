package planner

import (
	"github.com/studiumhq/studium-api/internal/domain"
)

// Params defines all configurable constants for the planning algorithms.
type Params struct {
	// Effort cost charged against daily capacity, per difficulty tier.
	Effort map[domain.Difficulty]float64

	// ReinforcementEffort is the cost of a review inserted after a
	// "forgot" outcome, regardless of the content's difficulty.
	ReinforcementEffort float64

	// Window shape around a review's nominal date.
	WindowBefore int
	WindowAfter  int

	// Capacity multipliers.
	HeavyDayMultiplier float64
	FasterMultiplier   float64
	SlowerMultiplier   float64

	// CapacitySlack is the factor applied to nominal capacity during
	// placement. Capacity is a soft target, not a hard cap.
	CapacitySlack float64

	// FallbackExtraDays extends the scan range past the window end
	// when no in-window date fits.
	FallbackExtraDays int

	// HorizonDays is how far ahead schedule reads look when the
	// caller gives no explicit date range.
	HorizonDays int

	// Scoring weights for placement priority.
	OverdueWeight float64
	EffortWeight  float64
	DueTodayBonus float64

	// Remembered-stretch heuristic: push each pending review out by
	// max(StretchMinDays, ceil(daysUntilDue * StretchFraction)).
	StretchMinDays  int
	StretchFraction float64

	// TomorrowHeavyMultiplier is the exception multiplier installed by
	// the "make tomorrow heavy" action.
	TomorrowHeavyMultiplier float64
}

// DefaultIntervals is the fallback interval table, used when a user
// has no offsets configured for a difficulty.
var DefaultIntervals = domain.ReviewIntervals{
	domain.DifficultyEasy:   {14, 60},
	domain.DifficultyMedium: {7, 21, 60},
	domain.DifficultyHard:   {2, 7, 15, 30},
}

// DefaultDailyLimit is the base capacity installed for new users.
const DefaultDailyLimit = 5.0

// NewDefaultParams creates a Params instance with the standard values.
func NewDefaultParams() *Params {
	return &Params{
		Effort: map[domain.Difficulty]float64{
			domain.DifficultyEasy:   1.0,
			domain.DifficultyMedium: 1.3,
			domain.DifficultyHard:   1.7,
		},
		ReinforcementEffort: 1.7,

		WindowBefore: 1,
		WindowAfter:  2,

		HeavyDayMultiplier: 0.6,
		FasterMultiplier:   1.2,
		SlowerMultiplier:   0.8,

		CapacitySlack:     1.3,
		FallbackExtraDays: 2,
		HorizonDays:       14,

		OverdueWeight: 100,
		EffortWeight:  10,
		DueTodayBonus: 50,

		StretchMinDays:  2,
		StretchFraction: 0.2,

		TomorrowHeavyMultiplier: 0.4,
	}
}

// EffortOf returns the effort cost for the given difficulty.
func (p *Params) EffortOf(difficulty domain.Difficulty) float64 {
	if effort, ok := p.Effort[difficulty]; ok {
		return effort
	}
	return p.Effort[domain.DifficultyMedium]
}

// OffsetsFor returns the configured day offsets for a difficulty,
// falling back to DefaultIntervals when the user's table has none.
// The second return value reports whether the fallback was taken.
func (p *Params) OffsetsFor(
	intervals domain.ReviewIntervals,
	difficulty domain.Difficulty,
) ([]int, bool) {
	if offsets, ok := intervals[difficulty]; ok && len(offsets) > 0 {
		return offsets, false
	}
	return DefaultIntervals[difficulty], true
}

// CopyDefaultIntervals returns a fresh copy of the default interval
// table, safe for callers to mutate per user.
func CopyDefaultIntervals() domain.ReviewIntervals {
	intervals := make(domain.ReviewIntervals, len(DefaultIntervals))
	for difficulty, offsets := range DefaultIntervals {
		intervals[difficulty] = append([]int(nil), offsets...)
	}
	return intervals
}
