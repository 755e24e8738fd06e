// Package suggestion computes the "what should I do next" hint shown on
// the dashboard. It is a read-only layer over the stores: it never
// mutates the plan, it only inspects it.
package suggestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
	"github.com/studiumhq/studium-api/internal/domain/planner"
	"github.com/studiumhq/studium-api/internal/platform/logger"
	"github.com/studiumhq/studium-api/internal/store"
)

// Action is the machine-readable key for a suggested next step. Clients
// localize the display text; the API only ships the key and its counts.
type Action string

const (
	// ActionAddSubject suggests creating a first subject.
	ActionAddSubject Action = "add_subject"
	// ActionAddContent suggests recording a first studied topic.
	ActionAddContent Action = "add_content"
	// ActionDoReviews suggests working through the reviews due today.
	ActionDoReviews Action = "do_reviews"
	// ActionPlanTomorrow suggests trimming tomorrow, which is overloaded.
	ActionPlanTomorrow Action = "plan_tomorrow"
	// ActionAllGood means the plan needs no attention right now.
	ActionAllGood Action = "all_good"
)

// Suggestion is the computed next action with the numbers that led to it.
type Suggestion struct {
	Action           Action  `json:"action"`
	DueToday         int     `json:"due_today"`
	TomorrowLoad     float64 `json:"tomorrow_load"`
	TomorrowCapacity float64 `json:"tomorrow_capacity"`
}

// Service computes the suggested next action for a user.
type Service interface {
	NextAction(ctx context.Context, userID uuid.UUID) (*Suggestion, error)
}

// Narrow read-side ports. The postgres stores satisfy these directly;
// declaring only what this service consumes keeps its tests small.

// SubjectReader lists a user's subjects.
type SubjectReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error)
}

// ContentReader lists a user's study content.
type ContentReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudyContent, error)
}

// ReviewReader lists a user's pending reviews.
type ReviewReader interface {
	ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)
}

// SettingsReader loads a user's settings.
type SettingsReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

// ExceptionReader lists a user's day exceptions in a date range.
type ExceptionReader interface {
	ListByUserAndDateRange(
		ctx context.Context,
		userID uuid.UUID,
		from, to string,
	) ([]*domain.DayException, error)
}

type serviceImpl struct {
	subjects   SubjectReader
	contents   ContentReader
	reviews    ReviewReader
	settings   SettingsReader
	exceptions ExceptionReader
	params     *planner.Params
	logger     *slog.Logger

	// today is injectable so tests can pin the calendar.
	today func() string
}

// NewService creates a new suggestion Service implementation.
func NewService(
	subjects SubjectReader,
	contents ContentReader,
	reviews ReviewReader,
	settings SettingsReader,
	exceptions ExceptionReader,
	params *planner.Params,
	logger *slog.Logger,
) Service {
	if subjects == nil || contents == nil || reviews == nil || settings == nil || exceptions == nil {
		panic("stores cannot be nil")
	}
	if params == nil {
		params = planner.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		subjects:   subjects,
		contents:   contents,
		reviews:    reviews,
		settings:   settings,
		exceptions: exceptions,
		params:     params,
		logger:     logger.With(slog.String("component", "suggestion_service")),
		today:      dateutil.Today,
	}
}

// NextAction implements Service.NextAction. The checks run in priority
// order: an empty account needs setup before review counts mean anything,
// and due reviews outrank tomorrow's overload.
func (s *serviceImpl) NextAction(ctx context.Context, userID uuid.UUID) (*Suggestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subjects, err := s.subjects.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}
	if len(subjects) == 0 {
		return &Suggestion{Action: ActionAddSubject}, nil
	}

	contents, err := s.contents.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contents: %w", err)
	}
	if len(contents) == 0 {
		return &Suggestion{Action: ActionAddContent}, nil
	}

	today := s.today()
	tomorrow, err := dateutil.AddDays(today, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tomorrow: %w", err)
	}

	pending, err := s.reviews.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending reviews: %w", err)
	}

	dueToday := 0
	var tomorrowLoad float64
	for _, review := range pending {
		if review.Date <= today {
			dueToday++
		}
		if review.Date == tomorrow {
			tomorrowLoad += review.Effort
		}
	}

	if dueToday > 0 {
		return &Suggestion{Action: ActionDoReviews, DueToday: dueToday}, nil
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = &domain.UserSettings{
			UserID:     userID,
			DailyLimit: planner.DefaultDailyLimit,
			Intervals:  planner.CopyDefaultIntervals(),
			PaceMode:   domain.PaceModeNormal,
		}
	}

	exceptions, err := s.exceptions.ListByUserAndDateRange(ctx, userID, tomorrow, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to load day exceptions: %w", err)
	}

	tomorrowCapacity, err := s.params.DailyCapacity(tomorrow, settings, exceptions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute capacity: %w", err)
	}

	if tomorrowLoad > tomorrowCapacity {
		log.Debug("tomorrow overloaded",
			slog.String("user_id", userID.String()),
			slog.Float64("load", tomorrowLoad),
			slog.Float64("capacity", tomorrowCapacity))
		return &Suggestion{
			Action:           ActionPlanTomorrow,
			TomorrowLoad:     tomorrowLoad,
			TomorrowCapacity: tomorrowCapacity,
		}, nil
	}

	return &Suggestion{
		Action:           ActionAllGood,
		TomorrowLoad:     tomorrowLoad,
		TomorrowCapacity: tomorrowCapacity,
	}, nil
}
