package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// Schema описывает таблицу, с которой работает EntityRepository.
type Schema struct {
	Table string
	// Columns колонки, доступные для записи. id и created_at заполняет база.
	Columns []string
	// OrderBy порядок выдачи списка, без ключевого слова ORDER BY.
	OrderBy string
}

func (s Schema) allows(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// EntityRepository универсальный репозиторий для сущностей контента.
// Одна реализация CRUD обслуживает все таблицы, отличия задаются Schema.
type EntityRepository[T any] struct {
	db     *sqlx.DB
	schema Schema
}

// NewEntityRepository создаёт репозиторий для таблицы из schema.
func NewEntityRepository[T any](db *sqlx.DB, schema Schema) *EntityRepository[T] {
	return &EntityRepository[T]{db: db, schema: schema}
}

func (r *EntityRepository[T]) notFound() error {
	return fmt.Errorf("%s: %w", r.schema.Table, common.ErrNotFound)
}

// List возвращает все строки таблицы в порядке схемы.
func (r *EntityRepository[T]) List(ctx context.Context) ([]T, error) {
	query := "SELECT * FROM " + r.schema.Table
	if r.schema.OrderBy != "" {
		query += " ORDER BY " + r.schema.OrderBy
	}

	items := make([]T, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("%s repository: list %w", r.schema.Table, err)
	}
	return items, nil
}

// GetByID возвращает строку по идентификатору.
func (r *EntityRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return common.GetByID[T](ctx, r.db, r.schema.Table, id, r.notFound())
}

// Count возвращает количество строк.
func (r *EntityRepository[T]) Count(ctx context.Context) (int, error) {
	return common.CountRows(ctx, r.db, r.schema.Table)
}

// Create вставляет строку и возвращает её в сохранённом виде.
func (r *EntityRepository[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	query, args, err := buildInsert(r.schema, fields)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := r.db.GetContext(ctx, &entity, query, args...); err != nil {
		return nil, fmt.Errorf("%s repository: insert %w", r.schema.Table, common.MapWriteError(err))
	}
	return &entity, nil
}

// Update меняет переданные колонки строки и возвращает её новое состояние.
func (r *EntityRepository[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	query, args, err := buildUpdate(r.schema, id, fields)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := r.db.GetContext(ctx, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.notFound()
		}
		return nil, fmt.Errorf("%s repository: update %w", r.schema.Table, common.MapWriteError(err))
	}
	return &entity, nil
}

// Delete удаляет строку по идентификатору.
func (r *EntityRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.schema.Table), id)
	if err != nil {
		return fmt.Errorf("%s repository: delete %w", r.schema.Table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s repository: delete rows affected %w", r.schema.Table, err)
	}
	if affected == 0 {
		return r.notFound()
	}
	return nil
}

// buildInsert собирает INSERT ... RETURNING * для разрешённых колонок.
func buildInsert(schema Schema, fields map[string]any) (string, []any, error) {
	columns, args, err := orderedColumns(schema, fields)
	if err != nil {
		return "", nil, err
	}

	if len(columns) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", schema.Table), nil, nil
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		schema.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args, nil
}

// buildUpdate собирает UPDATE ... RETURNING * для разрешённых колонок.
func buildUpdate(schema Schema, id uuid.UUID, fields map[string]any) (string, []any, error) {
	columns, args, err := orderedColumns(schema, fields)
	if err != nil {
		return "", nil, err
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("%s repository: update без полей: %w", schema.Table, common.ErrInvalidInput)
	}

	sets := make([]string, len(columns))
	for i, column := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		schema.Table,
		strings.Join(sets, ", "),
		len(args),
	)
	return query, args, nil
}

// orderedColumns проверяет колонки по схеме и раскладывает их в стабильном порядке.
func orderedColumns(schema Schema, fields map[string]any) ([]string, []any, error) {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		if !schema.allows(column) {
			return nil, nil, fmt.Errorf("%s repository: %w %q", schema.Table, common.ErrUnknownColumn, column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]any, len(columns))
	for i, column := range columns {
		value := fields[column]
		if list, ok := value.([]string); ok {
			value = pq.Array(list)
		}
		args[i] = value
	}
	return columns, args, nil
}
