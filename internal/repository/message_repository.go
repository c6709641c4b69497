package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// ErrMessageNotFound возвращается, когда сообщение не найдено.
var ErrMessageNotFound = fmt.Errorf("%s: %w", models.TableMessages, common.ErrNotFound)

// MessageRepository отвечает за работу с сообщениями контактной формы.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository создаёт экземпляр репозитория.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create сохраняет новое сообщение. Новое сообщение всегда непрочитанное.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (name, email, subject, message, read)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, read, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
	).Scan(&msg.ID, &msg.Read, &msg.CreatedAt); err != nil {
		return fmt.Errorf("message repository: create %w", err)
	}

	return nil
}

// List возвращает сообщения, новые первыми.
func (r *MessageRepository) List(ctx context.Context) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	if err := r.db.SelectContext(ctx, &messages, `SELECT * FROM messages ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("message repository: list %w", err)
	}
	return messages, nil
}

// ListRecent возвращает limit последних сообщений.
func (r *MessageRepository) ListRecent(ctx context.Context, limit int) ([]models.Message, error) {
	messages := make([]models.Message, 0, limit)
	if err := r.db.SelectContext(ctx, &messages, `SELECT * FROM messages ORDER BY created_at DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("message repository: list recent %w", err)
	}
	return messages, nil
}

// GetByID возвращает сообщение по идентификатору.
func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	return common.GetByID[models.Message](ctx, r.db, models.TableMessages, id, ErrMessageNotFound)
}

// MarkAsRead помечает непрочитанное сообщение прочитанным. Уже прочитанное не обновляется.
func (r *MessageRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET read = TRUE WHERE id = $1 AND read = FALSE`, id)
	if err != nil {
		return fmt.Errorf("message repository: mark as read %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("message repository: rows affected %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM messages WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("message repository: mark as read %w", err)
	}
	if !exists {
		return ErrMessageNotFound
	}
	return nil
}

// Delete удаляет сообщение.
func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("message repository: delete %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("message repository: rows affected %w", err)
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// CountUnread возвращает количество непрочитанных сообщений.
func (r *MessageRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages WHERE read = FALSE`); err != nil {
		return 0, fmt.Errorf("message repository: count unread %w", err)
	}
	return count, nil
}
