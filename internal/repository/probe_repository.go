package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// ProbeRepository проверяет доступность базы и таблиц.
type ProbeRepository struct {
	db *sqlx.DB
}

// NewProbeRepository создаёт экземпляр репозитория.
func NewProbeRepository(db *sqlx.DB) *ProbeRepository {
	return &ProbeRepository{db: db}
}

// Ping проверяет соединение с базой.
func (r *ProbeRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("probe repository: ping %w", err)
	}
	return nil
}

// ProbeTable читает не более одной строки таблицы. Ошибка означает, что таблица недоступна.
// Проверяются только таблицы из models.Tables.
func (r *ProbeRepository) ProbeTable(ctx context.Context, table string) error {
	if !slices.Contains(models.Tables, table) {
		return fmt.Errorf("probe repository: %w: неизвестная таблица %q", common.ErrInvalidInput, table)
	}

	rows, err := r.db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 1", table))
	if err != nil {
		return fmt.Errorf("probe repository: %s %w", table, err)
	}
	defer rows.Close()

	_ = rows.Next()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("probe repository: %s %w", table, err)
	}
	return nil
}
