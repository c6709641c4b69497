package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// VisitRepository хранит просмотры страниц.
type VisitRepository struct {
	db *sqlx.DB
}

// NewVisitRepository создаёт экземпляр репозитория.
func NewVisitRepository(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Create сохраняет просмотр страницы.
func (r *VisitRepository) Create(ctx context.Context, visit *models.SiteVisit) error {
	query := `
		INSERT INTO site_visits (page, referrer, user_agent)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(ctx, query, visit.Page, visit.Referrer, visit.UserAgent).
		Scan(&visit.ID, &visit.CreatedAt); err != nil {
		return fmt.Errorf("visit repository: create %w", err)
	}
	return nil
}

// CountAll возвращает общее количество просмотров.
func (r *VisitRepository) CountAll(ctx context.Context) (int, error) {
	return common.CountRows(ctx, r.db, models.TableVisits)
}

// CountWithoutUserAgent возвращает количество просмотров без user agent.
// Дашборд показывает это число как приблизительное количество уникальных посетителей.
func (r *VisitRepository) CountWithoutUserAgent(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM site_visits WHERE user_agent IS NULL`); err != nil {
		return 0, fmt.Errorf("visit repository: count without user agent %w", err)
	}
	return count, nil
}
