package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormStore implements RecordStore on a gorm Postgres connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if err := s.db.WithContext(ctx).Table(table).Create(map[string]any(row)).Error; err != nil {
		return nil, translate(err)
	}
	// Re-read so the caller gets the row as stored, defaults included.
	if id, ok := row["id"]; ok {
		stored, err := s.Select(ctx, Query{Table: table, Filter: Filter{"id": id}, Limit: 1})
		if err == nil && len(stored) == 1 {
			return stored[0], nil
		}
	}
	return row, nil
}

func (s *GormStore) Select(ctx context.Context, q Query) ([]Row, error) {
	tx := s.db.WithContext(ctx).Table(q.Table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	if len(q.Filter) > 0 {
		tx = tx.Where(map[string]any(q.Filter))
	}
	if q.Pattern != nil {
		tx = tx.Where(q.Pattern.Column+" ILIKE ?", q.Pattern.Value)
	}
	if q.OrderBy != "" {
		order := q.OrderBy
		if q.Descending {
			order += " DESC"
		}
		tx = tx.Order(order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var raw []map[string]any
	if err := tx.Find(&raw).Error; err != nil {
		return nil, translate(err)
	}
	rows := make([]Row, len(raw))
	for i, m := range raw {
		rows[i] = normalizeRow(m)
	}
	return rows, nil
}

func (s *GormStore) Update(ctx context.Context, table string, filter Filter, patch Row, returning []string) (Row, error) {
	tx := s.db.WithContext(ctx).Table(table).Where(map[string]any(filter)).Updates(map[string]any(patch))
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	rows, err := s.Select(ctx, Query{Table: table, Columns: returning, Filter: filter, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// normalizeRow converts driver byte slices (jsonb columns) into raw JSON
// so rows re-encode as structured values rather than base64 strings.
func normalizeRow(m map[string]any) Row {
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			m[k] = json.RawMessage(b)
		}
	}
	return m
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
