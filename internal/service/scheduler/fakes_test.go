package scheduler

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/store"
)

// In-memory store fakes. WithTx returns the fake itself: the unit tests
// inject a runTx that simply invokes the function, so transactional and
// plain paths share the same state.

type fakeContentStore struct {
	items map[uuid.UUID]*domain.StudyContent
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{items: make(map[uuid.UUID]*domain.StudyContent)}
}

func (f *fakeContentStore) Create(_ context.Context, content *domain.StudyContent) error {
	clone := *content
	f.items[content.ID] = &clone
	return nil
}

func (f *fakeContentStore) GetByID(_ context.Context, id uuid.UUID) (*domain.StudyContent, error) {
	content, ok := f.items[id]
	if !ok {
		return nil, store.ErrContentNotFound
	}
	clone := *content
	return &clone, nil
}

func (f *fakeContentStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.StudyContent, error) {
	result := []*domain.StudyContent{}
	for _, content := range f.items {
		if content.UserID == userID {
			clone := *content
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeContentStore) ListBySubject(_ context.Context, userID, subjectID uuid.UUID) ([]*domain.StudyContent, error) {
	result := []*domain.StudyContent{}
	for _, content := range f.items {
		if content.UserID == userID && content.SubjectID == subjectID {
			clone := *content
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeContentStore) Update(_ context.Context, content *domain.StudyContent) error {
	if _, ok := f.items[content.ID]; !ok {
		return store.ErrContentNotFound
	}
	clone := *content
	f.items[content.ID] = &clone
	return nil
}

func (f *fakeContentStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrContentNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeContentStore) WithTx(*sql.Tx) store.ContentStore { return f }

type fakeReviewStore struct {
	items map[uuid.UUID]*domain.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{items: make(map[uuid.UUID]*domain.Review)}
}

func (f *fakeReviewStore) Create(_ context.Context, review *domain.Review) error {
	clone := *review
	f.items[review.ID] = &clone
	return nil
}

func (f *fakeReviewStore) CreateMultiple(ctx context.Context, reviews []*domain.Review) error {
	for _, review := range reviews {
		if err := f.Create(ctx, review); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	review, ok := f.items[id]
	if !ok {
		return nil, store.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (f *fakeReviewStore) selectSorted(match func(*domain.Review) bool) []*domain.Review {
	result := []*domain.Review{}
	for _, review := range f.items {
		if match(review) {
			clone := *review
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (f *fakeReviewStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	return f.selectSorted(func(r *domain.Review) bool { return r.UserID == userID }), nil
}

func (f *fakeReviewStore) ListPendingByUser(_ context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	return f.selectSorted(func(r *domain.Review) bool {
		return r.UserID == userID && r.IsPending()
	}), nil
}

func (f *fakeReviewStore) ListPendingByContent(_ context.Context, contentID uuid.UUID) ([]*domain.Review, error) {
	return f.selectSorted(func(r *domain.Review) bool {
		return r.ContentID == contentID && r.IsPending()
	}), nil
}

func (f *fakeReviewStore) ListByUserAndDateRange(_ context.Context, userID uuid.UUID, from, to string) ([]*domain.Review, error) {
	return f.selectSorted(func(r *domain.Review) bool {
		return r.UserID == userID && r.Date >= from && r.Date <= to
	}), nil
}

func (f *fakeReviewStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ReviewStatus, feedback domain.ReviewFeedback) error {
	review, ok := f.items[id]
	if !ok {
		return store.ErrReviewNotFound
	}
	review.Status = status
	review.Feedback = feedback
	return nil
}

func (f *fakeReviewStore) UpdateSchedule(_ context.Context, review *domain.Review) error {
	if _, ok := f.items[review.ID]; !ok {
		return store.ErrReviewNotFound
	}
	clone := *review
	f.items[review.ID] = &clone
	return nil
}

func (f *fakeReviewStore) UpdateSchedules(ctx context.Context, reviews []*domain.Review) error {
	for _, review := range reviews {
		if err := f.UpdateSchedule(ctx, review); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeReviewStore) DeletePendingByContent(_ context.Context, contentID uuid.UUID) (int64, error) {
	var deleted int64
	for id, review := range f.items {
		if review.ContentID == contentID && review.IsPending() {
			delete(f.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReviewStore) WithTx(*sql.Tx) store.ReviewStore { return f }

type fakeSettingsStore struct {
	items map[uuid.UUID]*domain.UserSettings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{items: make(map[uuid.UUID]*domain.UserSettings)}
}

func (f *fakeSettingsStore) Get(_ context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, ok := f.items[userID]
	if !ok {
		return nil, store.ErrSettingsNotFound
	}
	clone := *settings
	return &clone, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, settings *domain.UserSettings) error {
	clone := *settings
	f.items[settings.UserID] = &clone
	return nil
}

func (f *fakeSettingsStore) WithTx(*sql.Tx) store.SettingsStore { return f }

type exceptionKey struct {
	userID uuid.UUID
	date   string
}

type fakeExceptionStore struct {
	items map[exceptionKey]*domain.DayException
}

func newFakeExceptionStore() *fakeExceptionStore {
	return &fakeExceptionStore{items: make(map[exceptionKey]*domain.DayException)}
}

func (f *fakeExceptionStore) Upsert(_ context.Context, exception *domain.DayException) error {
	clone := *exception
	f.items[exceptionKey{exception.UserID, exception.Date}] = &clone
	return nil
}

func (f *fakeExceptionStore) GetByUserAndDate(_ context.Context, userID uuid.UUID, date string) (*domain.DayException, error) {
	exception, ok := f.items[exceptionKey{userID, date}]
	if !ok {
		return nil, store.ErrExceptionNotFound
	}
	clone := *exception
	return &clone, nil
}

func (f *fakeExceptionStore) ListByUserAndDateRange(_ context.Context, userID uuid.UUID, from, to string) ([]*domain.DayException, error) {
	result := []*domain.DayException{}
	for key, exception := range f.items {
		if key.userID == userID && key.date >= from && key.date <= to {
			clone := *exception
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (f *fakeExceptionStore) Delete(_ context.Context, userID uuid.UUID, date string) error {
	key := exceptionKey{userID, date}
	if _, ok := f.items[key]; !ok {
		return store.ErrExceptionNotFound
	}
	delete(f.items, key)
	return nil
}

func (f *fakeExceptionStore) WithTx(*sql.Tx) store.ExceptionStore { return f }

type fakeRetentionStore struct {
	events []*domain.RetentionEvent
}

func newFakeRetentionStore() *fakeRetentionStore {
	return &fakeRetentionStore{}
}

func (f *fakeRetentionStore) Create(_ context.Context, event *domain.RetentionEvent) error {
	clone := *event
	f.events = append(f.events, &clone)
	return nil
}

func (f *fakeRetentionStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*domain.RetentionEvent, error) {
	result := []*domain.RetentionEvent{}
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].UserID != userID {
			continue
		}
		clone := *f.events[i]
		result = append(result, &clone)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (f *fakeRetentionStore) ListByContent(_ context.Context, contentID uuid.UUID) ([]*domain.RetentionEvent, error) {
	result := []*domain.RetentionEvent{}
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].ContentID == contentID {
			clone := *f.events[i]
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeRetentionStore) WithTx(*sql.Tx) store.RetentionStore { return f }
