package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
	"github.com/studiumhq/studium-api/internal/domain/planner"
	"github.com/studiumhq/studium-api/internal/platform/logger"
	"github.com/studiumhq/studium-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// maxScheduleRangeDays bounds GetSchedule so a bad date range cannot
// produce an unbounded response.
const maxScheduleRangeDays = 366

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db         *sql.DB
	contents   store.ContentStore
	reviews    store.ReviewStore
	settings   store.SettingsStore
	exceptions store.ExceptionStore
	retention  store.RetentionStore
	params     *planner.Params
	locks      *userLocks
	logger     *slog.Logger

	// today is injectable so tests can pin the calendar.
	today func() string

	// runTx is injectable so unit tests can run the transactional flows
	// against fake stores without a live database.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewService creates a new scheduler Service implementation.
func NewService(
	db *sql.DB,
	contents store.ContentStore,
	reviews store.ReviewStore,
	settings store.SettingsStore,
	exceptions store.ExceptionStore,
	retention store.RetentionStore,
	params *planner.Params,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if contents == nil || reviews == nil || settings == nil || exceptions == nil || retention == nil {
		panic("stores cannot be nil")
	}
	if params == nil {
		params = planner.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		db:         db,
		contents:   contents,
		reviews:    reviews,
		settings:   settings,
		exceptions: exceptions,
		retention:  retention,
		params:     params,
		locks:      newUserLocks(),
		logger:     logger.With(slog.String("component", "scheduler_service")),
		today:      dateutil.Today,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// effectiveSettings loads the user's settings, substituting defaults
// when none were ever saved.
func (s *serviceImpl) effectiveSettings(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserSettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return &domain.UserSettings{
				UserID:     userID,
				DailyLimit: planner.DefaultDailyLimit,
				Intervals:  planner.CopyDefaultIntervals(),
				PaceMode:   domain.PaceModeNormal,
			}, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// AddContent implements Service.AddContent.
func (s *serviceImpl) AddContent(
	ctx context.Context,
	content *domain.StudyContent,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer s.locks.lock(content.UserID)()

	if err := content.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.effectiveSettings(ctx, content.UserID)
	if err != nil {
		return nil, NewServiceError("add_content", "failed to load settings", err)
	}

	generated, usedFallback, err := s.params.BuildReviews(content, settings.Intervals)
	if err != nil {
		return nil, NewServiceError("add_content", "failed to generate reviews", err)
	}
	if usedFallback {
		log.Warn("interval table empty for difficulty, used default intervals",
			slog.String("content_id", content.ID.String()),
			slog.String("difficulty", string(content.Difficulty)))
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.contents.WithTx(tx).Create(ctx, content); err != nil {
			return err
		}
		return s.reviews.WithTx(tx).CreateMultiple(ctx, generated)
	})
	if err != nil {
		log.Error("failed to persist content and reviews",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return nil, NewServiceError("add_content", "failed to save content", err)
	}

	if _, err := s.rebalanceLocked(ctx, content.UserID); err != nil {
		log.Error("rebalance after add failed",
			slog.String("error", err.Error()),
			slog.String("user_id", content.UserID.String()))
		return nil, NewServiceError("add_content", "failed to rebalance", err)
	}

	log.Info("study content added with review schedule",
		slog.String("content_id", content.ID.String()),
		slog.Int("review_count", len(generated)))

	// Reload so callers see the rebalanced dates.
	return s.reviews.ListPendingByContent(ctx, content.ID)
}

// UpdateContent implements Service.UpdateContent.
func (s *serviceImpl) UpdateContent(
	ctx context.Context,
	content *domain.StudyContent,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer s.locks.lock(content.UserID)()

	existing, err := s.contents.GetByID(ctx, content.ID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, NewServiceError("update_content", "failed to load content", err)
	}
	if existing.UserID != content.UserID {
		return nil, ErrNotOwned
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	// Topic-only edits keep the existing schedule; a new studied date or
	// difficulty invalidates it.
	regenerate := existing.DateStudied != content.DateStudied ||
		existing.Difficulty != content.Difficulty

	var generated []*domain.Review
	if regenerate {
		settings, err := s.effectiveSettings(ctx, content.UserID)
		if err != nil {
			return nil, NewServiceError("update_content", "failed to load settings", err)
		}
		generated, err = s.params.RegenerateReviews(content, settings.Intervals, s.today())
		if err != nil {
			return nil, NewServiceError("update_content", "failed to regenerate reviews", err)
		}
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.contents.WithTx(tx).Update(ctx, content); err != nil {
			return err
		}
		if !regenerate {
			return nil
		}
		txReviews := s.reviews.WithTx(tx)
		if _, err := txReviews.DeletePendingByContent(ctx, content.ID); err != nil {
			return err
		}
		return txReviews.CreateMultiple(ctx, generated)
	})
	if err != nil {
		log.Error("failed to update content",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return nil, NewServiceError("update_content", "failed to save content", err)
	}

	if _, err := s.rebalanceLocked(ctx, content.UserID); err != nil {
		return nil, NewServiceError("update_content", "failed to rebalance", err)
	}

	if regenerate {
		log.Info("study content updated, schedule regenerated",
			slog.String("content_id", content.ID.String()),
			slog.Int("review_count", len(generated)))
	}
	return s.reviews.ListPendingByContent(ctx, content.ID)
}

// DeleteContent implements Service.DeleteContent.
func (s *serviceImpl) DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer s.locks.lock(userID)()

	existing, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrContentNotFound
		}
		return NewServiceError("delete_content", "failed to load content", err)
	}
	if existing.UserID != userID {
		return ErrNotOwned
	}

	if err := s.contents.Delete(ctx, contentID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrContentNotFound
		}
		return NewServiceError("delete_content", "failed to delete content", err)
	}

	log.Info("study content deleted",
		slog.String("content_id", contentID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// SubmitFeedback implements Service.SubmitFeedback.
func (s *serviceImpl) SubmitFeedback(
	ctx context.Context,
	userID, reviewID uuid.UUID,
	feedback domain.ReviewFeedback,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer s.locks.lock(userID)()

	// Feedback is optional: completing without one records no retention
	// outcome and applies no adjustment.
	if feedback != "" && !domain.IsValidReviewFeedback(feedback) {
		return nil, ErrInvalidFeedback
	}

	review, err := s.loadOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsPending() {
		return nil, ErrReviewFinalized
	}

	today := s.today()
	tomorrow, err := dateutil.AddDays(today, 1)
	if err != nil {
		return nil, NewServiceError("submit_feedback", "failed to compute tomorrow", err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txReviews := s.reviews.WithTx(tx)

		if err := txReviews.UpdateStatus(ctx, reviewID, domain.ReviewStatusCompleted, feedback); err != nil {
			return err
		}

		switch feedback {
		case domain.ReviewFeedbackRemembered:
			if err := s.recordRetention(ctx, tx, userID, review.ContentID, domain.RetentionRemembered); err != nil {
				return err
			}
			return s.applyAdjustment(ctx, txReviews, userID, review.ContentID, domain.RetentionRemembered, today, tomorrow)

		case domain.ReviewFeedbackForgot:
			if err := s.recordRetention(ctx, tx, userID, review.ContentID, domain.RetentionForgot); err != nil {
				return err
			}
			return s.applyAdjustment(ctx, txReviews, userID, review.ContentID, domain.RetentionForgot, today, tomorrow)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to submit feedback",
			slog.String("error", err.Error()),
			slog.String("review_id", reviewID.String()))
		return nil, NewServiceError("submit_feedback", "failed to record feedback", err)
	}

	if _, err := s.rebalanceLocked(ctx, userID); err != nil {
		return nil, NewServiceError("submit_feedback", "failed to rebalance", err)
	}

	log.Info("review feedback recorded",
		slog.String("review_id", reviewID.String()),
		slog.String("feedback", string(feedback)))

	return s.reviews.GetByID(ctx, reviewID)
}

func (s *serviceImpl) recordRetention(
	ctx context.Context,
	tx *sql.Tx,
	userID, contentID uuid.UUID,
	eventType domain.RetentionEventType,
) error {
	event, err := domain.NewRetentionEvent(userID, contentID, eventType)
	if err != nil {
		return err
	}
	return s.retention.WithTx(tx).Create(ctx, event)
}

// applyAdjustment mutates a topic's remaining pending reviews after a
// recall outcome: "remembered" pushes each outward by the stretch
// heuristic, "forgot" inserts a reinforcement dated tomorrow unless a
// review is already due by then. Existing future reviews are never
// pulled closer.
func (s *serviceImpl) applyAdjustment(
	ctx context.Context,
	txReviews store.ReviewStore,
	userID, contentID uuid.UUID,
	eventType domain.RetentionEventType,
	today, tomorrow string,
) error {
	pending, err := txReviews.ListPendingByContent(ctx, contentID)
	if err != nil {
		return err
	}

	switch eventType {
	case domain.RetentionRemembered:
		for _, p := range pending {
			if err := s.params.StretchReview(p, today); err != nil {
				return err
			}
			if err := txReviews.UpdateSchedule(ctx, p); err != nil {
				return err
			}
		}
		return nil

	case domain.RetentionForgot:
		if planner.HasReviewDueBy(pending, tomorrow) {
			return nil
		}
		reinforcement, err := s.params.BuildReinforcement(userID, contentID, today)
		if err != nil {
			return err
		}
		return txReviews.Create(ctx, reinforcement)
	}

	return nil
}

// AdjustSchedule implements Service.AdjustSchedule.
func (s *serviceImpl) AdjustSchedule(
	ctx context.Context,
	userID, contentID uuid.UUID,
	eventType domain.RetentionEventType,
	reviewID *uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer s.locks.lock(userID)()

	if !domain.IsValidRetentionEventType(eventType) {
		return domain.ErrInvalidRetentionType
	}

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrContentNotFound
		}
		return NewServiceError("adjust_schedule", "failed to load content", err)
	}
	if content.UserID != userID {
		return ErrNotOwned
	}

	if reviewID != nil {
		review, err := s.loadOwnedReview(ctx, userID, *reviewID)
		if err != nil {
			return err
		}
		if !review.IsPending() {
			return ErrReviewFinalized
		}
	}

	today := s.today()
	tomorrow, err := dateutil.AddDays(today, 1)
	if err != nil {
		return NewServiceError("adjust_schedule", "failed to compute tomorrow", err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txReviews := s.reviews.WithTx(tx)

		if reviewID != nil {
			feedback := domain.ReviewFeedbackRemembered
			if eventType == domain.RetentionForgot {
				feedback = domain.ReviewFeedbackForgot
			}
			if err := txReviews.UpdateStatus(ctx, *reviewID, domain.ReviewStatusCompleted, feedback); err != nil {
				return err
			}
		}

		if err := s.recordRetention(ctx, tx, userID, contentID, eventType); err != nil {
			return err
		}
		return s.applyAdjustment(ctx, txReviews, userID, contentID, eventType, today, tomorrow)
	})
	if err != nil {
		log.Error("failed to adjust schedule",
			slog.String("error", err.Error()),
			slog.String("content_id", contentID.String()))
		return NewServiceError("adjust_schedule", "failed to record outcome", err)
	}

	if _, err := s.rebalanceLocked(ctx, userID); err != nil {
		return NewServiceError("adjust_schedule", "failed to rebalance", err)
	}

	log.Info("retention adjustment applied",
		slog.String("content_id", contentID.String()),
		slog.String("type", string(eventType)))
	return nil
}

// SkipReview implements Service.SkipReview.
func (s *serviceImpl) SkipReview(
	ctx context.Context,
	userID, reviewID uuid.UUID,
) (*domain.Review, error) {
	defer s.locks.lock(userID)()

	review, err := s.loadOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsPending() {
		return nil, ErrReviewFinalized
	}

	if err := s.reviews.UpdateStatus(ctx, reviewID, domain.ReviewStatusSkipped, ""); err != nil {
		return nil, NewServiceError("skip_review", "failed to skip review", err)
	}

	return s.reviews.GetByID(ctx, reviewID)
}

func (s *serviceImpl) loadOwnedReview(
	ctx context.Context,
	userID, reviewID uuid.UUID,
) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, NewServiceError("get_review", "failed to load review", err)
	}
	if review.UserID != userID {
		return nil, ErrNotOwned
	}
	return review, nil
}

// Rebalance implements Service.Rebalance.
func (s *serviceImpl) Rebalance(ctx context.Context, userID uuid.UUID) (int, error) {
	defer s.locks.lock(userID)()
	return s.rebalanceLocked(ctx, userID)
}

// rebalanceLocked runs the rebalancer for a user whose lock is already
// held. Only reviews whose date changed are written back, in a single
// transaction.
func (s *serviceImpl) rebalanceLocked(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pending, err := s.reviews.ListPendingByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load pending reviews: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	settings, err := s.effectiveSettings(ctx, userID)
	if err != nil {
		return 0, err
	}

	today := s.today()
	exceptions, err := s.loadExceptionsForPlacement(ctx, userID, today, pending)
	if err != nil {
		return 0, err
	}

	assignments, err := s.params.Rebalance(pending, settings, exceptions, today)
	if err != nil {
		return 0, fmt.Errorf("failed to compute rebalance plan: %w", err)
	}

	moved := make([]*domain.Review, 0, len(assignments))
	for _, a := range assignments {
		if !a.Moved {
			continue
		}
		updated := *a.Review
		updated.Date = a.Date
		moved = append(moved, &updated)
	}
	if len(moved) == 0 {
		return 0, nil
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.reviews.WithTx(tx).UpdateSchedules(ctx, moved)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to persist rebalance plan: %w", err)
	}

	log.Info("schedule rebalanced",
		slog.String("user_id", userID.String()),
		slog.Int("pending", len(pending)),
		slog.Int("moved", len(moved)))
	return len(moved), nil
}

// loadExceptionsForPlacement fetches the day exceptions covering every
// date the rebalancer might consider: from today through the latest
// window end plus the fallback slack.
func (s *serviceImpl) loadExceptionsForPlacement(
	ctx context.Context,
	userID uuid.UUID,
	today string,
	pending []*domain.Review,
) ([]*domain.DayException, error) {
	maxDate := today
	for _, review := range pending {
		if review.WindowEnd > maxDate {
			maxDate = review.WindowEnd
		}
	}
	to, err := dateutil.AddDays(maxDate, s.params.FallbackExtraDays)
	if err != nil {
		return nil, fmt.Errorf("failed to compute exception range: %w", err)
	}

	exceptions, err := s.exceptions.ListByUserAndDateRange(ctx, userID, today, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load day exceptions: %w", err)
	}
	return exceptions, nil
}

// SetTomorrowHeavy implements Service.SetTomorrowHeavy.
func (s *serviceImpl) SetTomorrowHeavy(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.DayException, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer s.locks.lock(userID)()

	tomorrow, err := dateutil.AddDays(s.today(), 1)
	if err != nil {
		return nil, NewServiceError("set_tomorrow_heavy", "failed to compute tomorrow", err)
	}

	exception, err := domain.NewDayException(
		userID,
		tomorrow,
		domain.DayExceptionHeavy,
		s.params.TomorrowHeavyMultiplier,
	)
	if err != nil {
		return nil, err
	}

	if err := s.exceptions.Upsert(ctx, exception); err != nil {
		log.Error("failed to save day exception",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("set_tomorrow_heavy", "failed to save exception", err)
	}

	if _, err := s.rebalanceLocked(ctx, userID); err != nil {
		return nil, NewServiceError("set_tomorrow_heavy", "failed to rebalance", err)
	}

	log.Info("tomorrow marked heavy",
		slog.String("user_id", userID.String()),
		slog.String("date", tomorrow))
	return exception, nil
}

// SetPace implements Service.SetPace.
func (s *serviceImpl) SetPace(ctx context.Context, userID uuid.UUID, mode domain.PaceMode) error {
	defer s.locks.lock(userID)()

	if !domain.IsValidPaceMode(mode) {
		return domain.ErrInvalidPaceMode
	}

	settings, err := s.effectiveSettings(ctx, userID)
	if err != nil {
		return NewServiceError("set_pace", "failed to load settings", err)
	}
	settings.PaceMode = mode

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return NewServiceError("set_pace", "failed to save settings", err)
	}

	if _, err := s.rebalanceLocked(ctx, userID); err != nil {
		return NewServiceError("set_pace", "failed to rebalance", err)
	}
	return nil
}

// GetSettings implements Service.GetSettings.
func (s *serviceImpl) GetSettings(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserSettings, error) {
	return s.effectiveSettings(ctx, userID)
}

// UpdateSettings implements Service.UpdateSettings.
func (s *serviceImpl) UpdateSettings(ctx context.Context, settings *domain.UserSettings) error {
	defer s.locks.lock(settings.UserID)()

	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return NewServiceError("update_settings", "failed to save settings", err)
	}

	if _, err := s.rebalanceLocked(ctx, settings.UserID); err != nil {
		return NewServiceError("update_settings", "failed to rebalance", err)
	}
	return nil
}

// GetSchedule implements Service.GetSchedule.
func (s *serviceImpl) GetSchedule(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]ScheduleDay, error) {
	// An omitted range means "the upcoming plan": today through the
	// configured horizon.
	if from == "" && to == "" {
		from = s.today()
		horizon, err := dateutil.AddDays(from, s.params.HorizonDays)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		to = horizon
	}
	if !dateutil.Valid(from) || !dateutil.Valid(to) || from > to {
		return nil, ErrInvalidDateRange
	}
	rangeDays, err := dateutil.DaysDiff(from, to)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if rangeDays > maxScheduleRangeDays {
		return nil, ErrInvalidDateRange
	}

	reviews, err := s.reviews.ListByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, NewServiceError("get_schedule", "failed to load reviews", err)
	}
	exceptions, err := s.exceptions.ListByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, NewServiceError("get_schedule", "failed to load exceptions", err)
	}
	settings, err := s.effectiveSettings(ctx, userID)
	if err != nil {
		return nil, NewServiceError("get_schedule", "failed to load settings", err)
	}

	byDate := make(map[string][]*domain.Review)
	for _, review := range reviews {
		byDate[review.Date] = append(byDate[review.Date], review)
	}

	days := make([]ScheduleDay, 0, rangeDays+1)
	for date := from; date <= to; {
		capacity, err := s.params.DailyCapacity(date, settings, exceptions)
		if err != nil {
			return nil, NewServiceError("get_schedule", "failed to compute capacity", err)
		}

		day := ScheduleDay{
			Date:     date,
			Capacity: capacity,
			Reviews:  byDate[date],
		}
		if day.Reviews == nil {
			day.Reviews = []*domain.Review{}
		}
		for _, review := range day.Reviews {
			if review.IsPending() {
				day.Load += review.Effort
			}
		}
		days = append(days, day)

		date, err = dateutil.AddDays(date, 1)
		if err != nil {
			return nil, NewServiceError("get_schedule", "failed to advance date", err)
		}
	}

	return days, nil
}

// ListRetentionEvents implements Service.ListRetentionEvents.
func (s *serviceImpl) ListRetentionEvents(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.RetentionEvent, error) {
	events, err := s.retention.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, NewServiceError("list_retention_events", "failed to load events", err)
	}
	return events, nil
}
