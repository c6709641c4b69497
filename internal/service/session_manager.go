package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

const (
	// SessionCookie cookie с токеном сессии.
	SessionCookie = "admin_session"
	// LoggedInCookie признак входа, который читает оболочка админки.
	LoggedInCookie = "admin_logged_in"
)

// SessionProvider провайдер аутентификации, которым пользуется SessionManager.
type SessionProvider interface {
	SignIn(ctx context.Context, email, password string, meta SessionMeta) (*Session, error)
	Resolve(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, token string) error
}

// AuthEvent изменение состояния аутентификации.
type AuthEvent struct {
	Type   string    `json:"event"`
	UserID uuid.UUID `json:"user_id"`
	At     time.Time `json:"at"`
}

// SessionManager владеет состоянием сессии администратора: cookie, проверкой токена
// и рассылкой событий входа и выхода подписчикам.
type SessionManager struct {
	provider SessionProvider
	secure   bool

	mu     sync.RWMutex
	subs   map[int]func(AuthEvent)
	nextID int
}

// NewSessionManager создаёт менеджер сессий. secure включает флаг Secure у cookie.
func NewSessionManager(provider SessionProvider, secure bool) *SessionManager {
	return &SessionManager{
		provider: provider,
		secure:   secure,
		subs:     make(map[int]func(AuthEvent)),
	}
}

// Subscribe подписывает fn на события аутентификации. Возвращает функцию отписки.
func (m *SessionManager) Subscribe(fn func(AuthEvent)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *SessionManager) publish(event AuthEvent) {
	m.mu.RLock()
	handlers := make([]func(AuthEvent), 0, len(m.subs))
	for _, fn := range m.subs {
		handlers = append(handlers, fn)
	}
	m.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}

// SignIn входит по паролю, выставляет cookie сессии и признака входа.
func (m *SessionManager) SignIn(ctx context.Context, w http.ResponseWriter, email, password string, meta SessionMeta) (*Session, error) {
	session, err := m.provider.SignIn(ctx, email, password, meta)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.MarkLoggedIn(w)

	logger.Component("session").WithField("user_id", session.UserID).Info("администратор вошёл")
	m.publish(AuthEvent{Type: models.AuthEventSignedIn, UserID: session.UserID, At: time.Now()})
	return session, nil
}

// Current возвращает текущую сессию запроса. Токен берётся из заголовка Authorization или cookie.
func (m *SessionManager) Current(ctx context.Context, r *http.Request) (*Session, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, apperror.ErrUnauthorized
	}
	return m.provider.Resolve(ctx, token)
}

// SignOut закрывает сессию запроса и очищает cookie. Подписчики получают SIGNED_OUT,
// если запрос нёс действующую сессию.
func (m *SessionManager) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token := TokenFromRequest(r)
	m.clearCookie(w, SessionCookie)
	m.ClearLoggedIn(w)

	if token == "" {
		return nil
	}

	session, resolveErr := m.provider.Resolve(ctx, token)
	if err := m.provider.SignOut(ctx, token); err != nil {
		return err
	}

	if resolveErr == nil {
		logger.Component("session").WithField("user_id", session.UserID).Info("администратор вышел")
		m.publish(AuthEvent{Type: models.AuthEventSignedOut, UserID: session.UserID, At: time.Now()})
	}
	return nil
}

// MarkLoggedIn выставляет cookie признака входа.
func (m *SessionManager) MarkLoggedIn(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     LoggedInCookie,
		Value:    "true",
		Path:     "/",
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearLoggedIn удаляет cookie признака входа.
func (m *SessionManager) ClearLoggedIn(w http.ResponseWriter) {
	m.clearCookie(w, LoggedInCookie)
}

func (m *SessionManager) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: name == SessionCookie,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest извлекает токен из заголовка Authorization: Bearer или cookie сессии.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// FriendlyLoginError заменяет ошибку неверных учётных данных понятным сообщением.
// Остальные ошибки возвращаются без изменений.
func FriendlyLoginError(err error) error {
	if errors.Is(err, apperror.ErrInvalidCredentials) {
		return apperror.Wrap(err, apperror.ErrCodeUnauthorized, "неверный email или пароль, проверьте данные и попробуйте снова")
	}
	return err
}
