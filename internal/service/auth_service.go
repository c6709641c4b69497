package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	Count(ctx context.Context) (int, error)
	UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error
	CreateSession(ctx context.Context, session *models.AdminSession) error
	GetActiveSession(ctx context.Context, id uuid.UUID) (*models.AdminSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// SessionMeta сведения о клиенте, открывшем сессию.
type SessionMeta struct {
	UserAgent string
	IP        string
}

// Session активная сессия администратора.
type Session struct {
	Token     string
	SessionID uuid.UUID
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// ErrAccountDisabled возвращается при входе в отключённую учётную запись.
var ErrAccountDisabled = apperror.New(apperror.ErrCodeUnauthorized, "учетная запись отключена")

// AuthService провайдер аутентификации администратора по паролю.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
	now          func() time.Time
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
		now:          time.Now,
	}
}

// SignIn проверяет email и пароль и открывает новую сессию.
// Неизвестный email и неверный пароль дают одну и ту же ошибку ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string, meta SessionMeta) (*Session, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Validation(err)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить учетные данные")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.repo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		logger.Component("auth").WithField("user_id", user.ID).WithError(err).Warn("не удалось обновить last_login_at")
	}

	now := s.now()
	session := &models.AdminSession{
		UserID:    user.ID,
		UserAgent: optionalString(meta.UserAgent),
		IPAddress: optionalString(meta.IP),
		ExpiresAt: now.Add(s.tokenManager.TTL()),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать сессию")
	}

	token, exp, err := s.tokenManager.Issue(user.ID, session.ID, now)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}

	return &Session{
		Token:     token,
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: exp,
	}, nil
}

// Resolve проверяет токен и возвращает сессию, если она ещё действует.
func (s *AuthService) Resolve(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperror.ErrUnauthorized
	}

	userID, sessionID, err := s.tokenManager.Parse(token)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, apperror.ErrSessionExpired.Message)
	}

	stored, err := s.repo.GetActiveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, apperror.ErrSessionExpired
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить сессию")
	}
	if stored.UserID != userID {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить сессию")
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return &Session{
		Token:     token,
		SessionID: stored.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// SignOut закрывает сессию токена. Недействительный токен считается уже закрытым.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	_, sessionID, err := s.tokenManager.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось закрыть сессию")
	}
	return nil
}

// EnsureAdmin создаёт администратора, если в базе нет ни одного.
// Возвращает true, если учётная запись была создана.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return false, fmt.Errorf("auth service: %w", err)
	}
	if err := validation.ValidateAdminPassword(password); err != nil {
		return false, fmt.Errorf("auth service: %w", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.AdminUser{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
