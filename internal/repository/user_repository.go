package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

var (
	// ErrUserNotFound возвращается, когда администратор не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла.
	ErrSessionNotFound = errors.New("session not found")
)

// UserRepository хранит администраторов и их сессии.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет администратора.
func (r *UserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, is_active, created_at
	`

	if err := r.db.QueryRowxContext(ctx, query, strings.ToLower(user.Email), user.PasswordHash).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create %w", common.MapWriteError(err))
	}
	return nil
}

// GetByEmail ищет администратора по email без учёта регистра.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return common.GetByField[models.AdminUser](ctx, r.db, "admin_users", "email", strings.ToLower(strings.TrimSpace(email)), ErrUserNotFound)
}

// GetByID возвращает администратора по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	return common.GetByID[models.AdminUser](ctx, r.db, "admin_users", id, ErrUserNotFound)
}

// Count возвращает количество администраторов.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return common.CountRows(ctx, r.db, "admin_users")
}

// UpdateLastLoginAt обновляет время последнего входа.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("user repository: update last login %w", err)
	}
	return nil
}

// CreateSession сохраняет новую сессию.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (user_id, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		session.UserID,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// GetActiveSession возвращает сессию, если она существует и ещё не истекла.
func (r *UserRepository) GetActiveSession(ctx context.Context, id uuid.UUID) (*models.AdminSession, error) {
	var session models.AdminSession
	query := `SELECT * FROM admin_sessions WHERE id = $1 AND expires_at > NOW()`
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if errors.Is(common.MapWriteError(err), common.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("user repository: get session %w", err)
	}
	return &session, nil
}

// DeleteSession удаляет сессию по идентификатору.
func (r *UserRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}
	return nil
}

// DeleteExpiredSessions удаляет истёкшие сессии и возвращает их количество.
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("user repository: delete expired sessions %w", err)
	}
	return res.RowsAffected()
}
