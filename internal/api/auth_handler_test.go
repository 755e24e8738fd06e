package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studiumhq/studium-api/internal/config"
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/service/auth"
	"github.com/studiumhq/studium-api/internal/store"
)

type fakeUserStore struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	user, ok := f.byID[id]
	if !ok {
		return store.ErrUserNotFound
	}
	delete(f.byEmail, user.Email)
	delete(f.byID, id)
	return nil
}

func (f *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return f }

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

func newAuthTestHandler(t *testing.T) (*AuthHandler, *fakeUserStore, *fakeSettingsStore) {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	users := newFakeUserStore()
	settings := newFakeSettingsStore()
	return NewAuthHandler(users, settings, jwtService, auth.NewBcryptVerifier()), users, settings
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterCreatesUserWithDefaultSettings(t *testing.T) {
	t.Parallel()
	handler, users, settings := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Email:    "ana@example.com",
		Password: "a-long-enough-password",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	stored, err := users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)

	installed, err := settings.Get(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaceModeNormal, installed.PaceMode)
	assert.Greater(t, installed.DailyLimit, 0.0)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	handler, _, _ := newAuthTestHandler(t)

	req := RegisterRequest{Email: "dup@example.com", Password: "a-long-enough-password"}
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/api/auth/register", req).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, handler.Register, "/api/auth/register", req).Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()
	handler, _, _ := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Email:    "short@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	handler, _, _ := newAuthTestHandler(t)

	register := RegisterRequest{Email: "leo@example.com", Password: "a-long-enough-password"}
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/api/auth/register", register).Code)

	rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "leo@example.com",
		Password: "a-long-enough-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "leo@example.com",
		Password: "wrong-password-entirely",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "a-long-enough-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()
	handler, users, _ := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Email:    "rafa@example.com",
		Password: "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.Equal(t, registered.UserID, refreshed.UserID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted in place of a refresh token.
	rec = postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: registered.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Deleted accounts cannot refresh.
	require.NoError(t, users.Delete(context.Background(), registered.UserID))
	rec = postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
