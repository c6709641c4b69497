package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

const testSecret = "test-secret-key-that-is-long-enough-123"

// mockAuthRepository хранит администраторов и сессии в памяти.
type mockAuthRepository struct {
	usersByEmail map[string]*models.AdminUser
	usersByID    map[uuid.UUID]*models.AdminUser
	sessions     map[uuid.UUID]*models.AdminSession
	lastLogins   int
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.AdminUser),
		usersByID:    make(map[uuid.UUID]*models.AdminUser),
		sessions:     make(map[uuid.UUID]*models.AdminSession),
	}
}

func (m *mockAuthRepository) Create(_ context.Context, user *models.AdminUser) error {
	user.ID = uuid.New()
	user.IsActive = true
	user.CreatedAt = time.Now()
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) Count(context.Context) (int, error) {
	return len(m.usersByID), nil
}

func (m *mockAuthRepository) UpdateLastLoginAt(context.Context, uuid.UUID) error {
	m.lastLogins++
	return nil
}

func (m *mockAuthRepository) CreateSession(_ context.Context, session *models.AdminSession) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.ID] = session
	return nil
}

func (m *mockAuthRepository) GetActiveSession(_ context.Context, id uuid.UUID) (*models.AdminSession, error) {
	session, ok := m.sessions[id]
	if !ok || !session.ExpiresAt.After(time.Now()) {
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

func (m *mockAuthRepository) DeleteSession(_ context.Context, id uuid.UUID) error {
	delete(m.sessions, id)
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mockAuthRepository) {
	t.Helper()
	repo := newMockAuthRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("CorrectHorse9"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &models.AdminUser{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
	}))
	return NewAuthService(repo, NewTokenManager(testSecret, time.Hour)), repo
}

func TestAuthService_SignInAndResolve(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.SignIn(ctx, "admin@example.com", "CorrectHorse9", SessionMeta{UserAgent: "test", IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "admin@example.com", session.Email)
	assert.Equal(t, 1, repo.lastLogins)
	require.Len(t, repo.sessions, 1)

	resolved, err := svc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, resolved.UserID)
	assert.Equal(t, session.SessionID, resolved.SessionID)
}

func TestAuthService_SignInInvalidCredentials(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "admin@example.com", "wrong-password", SessionMeta{})
	assert.True(t, errors.Is(err, apperror.ErrInvalidCredentials))

	_, err = svc.SignIn(ctx, "nobody@example.com", "CorrectHorse9", SessionMeta{})
	assert.True(t, errors.Is(err, apperror.ErrInvalidCredentials))

	_, err = svc.SignIn(ctx, "not-an-email", "CorrectHorse9", SessionMeta{})
	assert.True(t, apperror.IsValidation(err))

	assert.Empty(t, repo.sessions)
}

func TestAuthService_SignInDisabledAccount(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.usersByEmail["admin@example.com"].IsActive = false

	_, err := svc.SignIn(context.Background(), "admin@example.com", "CorrectHorse9", SessionMeta{})
	assert.True(t, errors.Is(err, ErrAccountDisabled))
}

func TestAuthService_SignOutEndsSession(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.SignIn(ctx, "admin@example.com", "CorrectHorse9", SessionMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, session.Token))
	assert.Empty(t, repo.sessions)

	_, err = svc.Resolve(ctx, session.Token)
	assert.True(t, errors.Is(err, apperror.ErrSessionExpired))

	assert.NoError(t, svc.SignOut(ctx, "garbage"))
}

func TestAuthService_ResolveRejectsForeignToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	other := NewTokenManager("another-secret-key-that-is-long-enough", time.Hour)
	token, _, err := other.Issue(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), token)
	assert.True(t, apperror.IsUnauthorized(err))

	_, err = svc.Resolve(context.Background(), "")
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newMockAuthRepository()
	svc := NewAuthService(repo, NewTokenManager(testSecret, time.Hour))
	ctx := context.Background()

	_, err := svc.EnsureAdmin(ctx, "owner@example.com", "weak")
	assert.Error(t, err)

	created, err := svc.EnsureAdmin(ctx, "Owner@Example.com", "StrongPass123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, repo.usersByEmail, "owner@example.com")

	created, err = svc.EnsureAdmin(ctx, "second@example.com", "StrongPass123")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.usersByID, 1)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Minute)
	userID, sessionID := uuid.New(), uuid.New()

	token, exp, err := tm.Issue(userID, sessionID, time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	gotUser, gotSession, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, sessionID, gotSession)

	expired, _, err := tm.Issue(userID, sessionID, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)
	_, _, err = tm.Parse(expired)
	assert.Error(t, err)
}

func TestSessionManager_SignInSetsCookiesAndPublishes(t *testing.T) {
	svc, _ := newTestAuthService(t)
	manager := NewSessionManager(svc, false)

	var events []AuthEvent
	unsubscribe := manager.Subscribe(func(e AuthEvent) { events = append(events, e) })
	defer unsubscribe()

	rec := httptest.NewRecorder()
	session, err := manager.SignIn(context.Background(), rec, "admin@example.com", "CorrectHorse9", SessionMeta{})
	require.NoError(t, err)

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, SessionCookie)
	require.Contains(t, cookies, LoggedInCookie)
	assert.Equal(t, session.Token, cookies[SessionCookie].Value)
	assert.True(t, cookies[SessionCookie].HttpOnly)
	assert.Equal(t, "true", cookies[LoggedInCookie].Value)

	require.Len(t, events, 1)
	assert.Equal(t, models.AuthEventSignedIn, events[0].Type)
}

func TestSessionManager_CurrentFromCookieAndHeader(t *testing.T) {
	svc, _ := newTestAuthService(t)
	manager := NewSessionManager(svc, false)
	session, err := manager.SignIn(context.Background(), httptest.NewRecorder(), "admin@example.com", "CorrectHorse9", SessionMeta{})
	require.NoError(t, err)

	byCookie := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	byCookie.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	current, err := manager.Current(context.Background(), byCookie)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, current.UserID)

	byHeader := httptest.NewRequest(http.MethodGet, "/api/admin/services", nil)
	byHeader.Header.Set("Authorization", "Bearer "+session.Token)
	_, err = manager.Current(context.Background(), byHeader)
	require.NoError(t, err)

	_, err = manager.Current(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestSessionManager_SignOutPublishesAndUnsubscribeStops(t *testing.T) {
	svc, _ := newTestAuthService(t)
	manager := NewSessionManager(svc, false)

	var first, second []string
	unsubscribeFirst := manager.Subscribe(func(e AuthEvent) { first = append(first, e.Type) })
	unsubscribeSecond := manager.Subscribe(func(e AuthEvent) { second = append(second, e.Type) })
	defer unsubscribeSecond()

	session, err := manager.SignIn(context.Background(), httptest.NewRecorder(), "admin@example.com", "CorrectHorse9", SessionMeta{})
	require.NoError(t, err)

	unsubscribeFirst()
	unsubscribeFirst()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	rec := httptest.NewRecorder()
	require.NoError(t, manager.SignOut(context.Background(), rec, req))

	assert.Equal(t, []string{models.AuthEventSignedIn}, first)
	assert.Equal(t, []string{models.AuthEventSignedIn, models.AuthEventSignedOut}, second)

	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge, c.Name)
	}

	_, err = manager.Current(context.Background(), req)
	assert.Error(t, err)
}

func TestFriendlyLoginError(t *testing.T) {
	friendly := FriendlyLoginError(apperror.ErrInvalidCredentials)
	var appErr *apperror.AppError
	require.True(t, errors.As(friendly, &appErr))
	assert.NotEqual(t, apperror.ErrInvalidCredentials.Message, appErr.Message)
	assert.Equal(t, apperror.ErrCodeUnauthorized, appErr.Code)

	other := errors.New("network down")
	assert.Same(t, other, FriendlyLoginError(other))
}
