// Package store defines the record and blob storage capabilities the
// request handlers depend on, plus the Postgres-backed implementation.
// Handlers never touch a concrete database type directly.
package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no record matched the filter.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a unique constraint rejected the write.
	ErrConflict = errors.New("duplicate record")
)

// Row is a single record keyed by column name.
type Row map[string]any

// String returns the row value for key as a string. Absent and NULL
// columns come back as "".
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the row value for key as a bool, false when absent.
func (r Row) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Filter is an equality match on each listed column.
type Filter map[string]any

// Pattern is a case-insensitive equality match on a single column.
type Pattern struct {
	Column string
	Value  string
}

// Query describes a bounded select against one table.
type Query struct {
	Table      string
	Columns    []string // empty selects all columns
	Filter     Filter
	Pattern    *Pattern
	OrderBy    string
	Descending bool
	Limit      int
}

// RecordStore is the persistence capability for tourist and report
// records.
type RecordStore interface {
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Select(ctx context.Context, q Query) ([]Row, error)
	Update(ctx context.Context, table string, filter Filter, patch Row, returning []string) (Row, error)
}

// BlobStore uploads a file and returns its public URL.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
