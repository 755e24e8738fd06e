package planner

import (
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// DailyCapacity computes the effective review budget for a calendar
// date, in effort points. Multipliers compose multiplicatively: the
// weekly heavy-day pattern, the global pace mode, and any one-off
// exception for the date all stack. The result is floored at zero.
func (p *Params) DailyCapacity(
	date string,
	settings *domain.UserSettings,
	exceptions []*domain.DayException,
) (float64, error) {
	weekday, err := dateutil.DayOfWeek(date)
	if err != nil {
		return 0, err
	}

	multiplier := 1.0

	if settings.IsHeavyDay(weekday) {
		multiplier *= p.HeavyDayMultiplier
	}

	switch settings.PaceMode {
	case domain.PaceModeFaster:
		multiplier *= p.FasterMultiplier
	case domain.PaceModeSlower:
		multiplier *= p.SlowerMultiplier
	}

	for _, exception := range exceptions {
		if exception.Date == date {
			multiplier *= exception.CapacityMultiplier
			break
		}
	}

	capacity := settings.DailyLimit * multiplier
	if capacity < 0 {
		capacity = 0
	}
	return capacity, nil
}
