package suggestion

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/planner"
	"github.com/studiumhq/studium-api/internal/store"
)

type fixture struct {
	subjects   []*domain.Subject
	contents   []*domain.StudyContent
	pending    []*domain.Review
	settings   *domain.UserSettings
	exceptions []*domain.DayException
}

func (f *fixture) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.Subject, error) {
	return f.subjects, nil
}

type contentReader struct{ f *fixture }

func (r contentReader) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.StudyContent, error) {
	return r.f.contents, nil
}

type reviewReader struct{ f *fixture }

func (r reviewReader) ListPendingByUser(_ context.Context, _ uuid.UUID) ([]*domain.Review, error) {
	return r.f.pending, nil
}

type settingsReader struct{ f *fixture }

func (r settingsReader) Get(_ context.Context, _ uuid.UUID) (*domain.UserSettings, error) {
	if r.f.settings == nil {
		return nil, store.ErrSettingsNotFound
	}
	return r.f.settings, nil
}

type exceptionReader struct{ f *fixture }

func (r exceptionReader) ListByUserAndDateRange(_ context.Context, _ uuid.UUID, from, to string) ([]*domain.DayException, error) {
	result := []*domain.DayException{}
	for _, exc := range r.f.exceptions {
		if exc.Date >= from && exc.Date <= to {
			result = append(result, exc)
		}
	}
	return result, nil
}

func newTestService(f *fixture, today string) Service {
	svc := NewService(
		f,
		contentReader{f},
		reviewReader{f},
		settingsReader{f},
		exceptionReader{f},
		planner.NewDefaultParams(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	).(*serviceImpl)
	svc.today = func() string { return today }
	return svc
}

func subjectFixture(t *testing.T) *domain.Subject {
	t.Helper()
	subject, err := domain.NewSubject(uuid.New(), "biology", "#2f9e44")
	require.NoError(t, err)
	return subject
}

func contentFixture(t *testing.T) *domain.StudyContent {
	t.Helper()
	content, err := domain.NewStudyContent(uuid.New(), uuid.New(), "mitosis", "2024-01-08", domain.DifficultyMedium)
	require.NoError(t, err)
	return content
}

func reviewFixture(t *testing.T, date string, effort float64) *domain.Review {
	t.Helper()
	windowEnd := date
	review, err := domain.NewReview(uuid.New(), uuid.New(), date, date, windowEnd, effort)
	require.NoError(t, err)
	return review
}

func TestNextActionEmptyAccount(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fixture{}, "2024-01-10")

	suggestion, err := svc.NextAction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ActionAddSubject, suggestion.Action)
}

func TestNextActionNoContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fixture{
		subjects: []*domain.Subject{subjectFixture(t)},
	}, "2024-01-10")

	suggestion, err := svc.NextAction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ActionAddContent, suggestion.Action)
}

func TestNextActionReviewsDue(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fixture{
		subjects: []*domain.Subject{subjectFixture(t)},
		contents: []*domain.StudyContent{contentFixture(t)},
		pending: []*domain.Review{
			reviewFixture(t, "2024-01-09", 1.0), // overdue counts as due
			reviewFixture(t, "2024-01-10", 1.3),
			reviewFixture(t, "2024-01-15", 1.0),
		},
	}, "2024-01-10")

	suggestion, err := svc.NextAction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ActionDoReviews, suggestion.Action)
	assert.Equal(t, 2, suggestion.DueToday)
}

func TestNextActionTomorrowOverloaded(t *testing.T) {
	t.Parallel()

	// Six unit-effort reviews tomorrow against a capacity of five.
	pending := []*domain.Review{}
	for i := 0; i < 6; i++ {
		pending = append(pending, reviewFixture(t, "2024-01-11", 1.0))
	}

	svc := newTestService(&fixture{
		subjects: []*domain.Subject{subjectFixture(t)},
		contents: []*domain.StudyContent{contentFixture(t)},
		pending:  pending,
	}, "2024-01-10")

	suggestion, err := svc.NextAction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ActionPlanTomorrow, suggestion.Action)
	assert.InDelta(t, 6.0, suggestion.TomorrowLoad, 1e-9)
	assert.InDelta(t, 5.0, suggestion.TomorrowCapacity, 1e-9)
}

func TestNextActionAllGood(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fixture{
		subjects: []*domain.Subject{subjectFixture(t)},
		contents: []*domain.StudyContent{contentFixture(t)},
		pending: []*domain.Review{
			reviewFixture(t, "2024-01-11", 1.0),
			reviewFixture(t, "2024-01-15", 1.3),
		},
	}, "2024-01-10")

	suggestion, err := svc.NextAction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ActionAllGood, suggestion.Action)
	assert.InDelta(t, 1.0, suggestion.TomorrowLoad, 1e-9)
}

func TestNextActionHeavyTomorrowLowersThreshold(t *testing.T) {
	t.Parallel()

	// Three unit-effort reviews would fit a normal day, but tomorrow is
	// marked heavy at multiplier 0.4 (capacity 2).
	pending := []*domain.Review{}
	for i := 0; i < 3; i++ {
		pending = append(pending, reviewFixture(t, "2024-01-11", 1.0))
	}

	svc := newTestService(&fixture{
		subjects: []*domain.Subject{subjectFixture(t)},
		contents: []*domain.StudyContent{contentFixture(t)},
		pending:  pending,
		exceptions: []*domain.DayException{{
			ID:                 uuid.New(),
			UserID:             uuid.New(),
			Date:               "2024-01-11",
			Type:               domain.DayExceptionHeavy,
			CapacityMultiplier: 0.4,
		}},
	}, "2024-01-10")

	suggestion, err := svc.NextAction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ActionPlanTomorrow, suggestion.Action)
	assert.InDelta(t, 2.0, suggestion.TomorrowCapacity, 1e-9)
}
