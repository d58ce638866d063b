package tourists

import (
	"context"

	"github.com/SafeTrails/ST-Backend/internal/store"
)

// fakeRecordStore implements store.RecordStore without a database. Each
// operation delegates to an optional function field and records the
// calls it saw.
type fakeRecordStore struct {
	selectFn func(ctx context.Context, q store.Query) ([]store.Row, error)
	insertFn func(ctx context.Context, table string, row store.Row) (store.Row, error)
	updateFn func(ctx context.Context, table string, filter store.Filter, patch store.Row, returning []string) (store.Row, error)

	selects []store.Query
	inserts []store.Row
	updates []store.Filter
}

func (f *fakeRecordStore) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	f.selects = append(f.selects, q)
	if f.selectFn == nil {
		return nil, nil
	}
	return f.selectFn(ctx, q)
}

func (f *fakeRecordStore) Insert(ctx context.Context, table string, row store.Row) (store.Row, error) {
	f.inserts = append(f.inserts, row)
	if f.insertFn == nil {
		return row, nil
	}
	return f.insertFn(ctx, table, row)
}

func (f *fakeRecordStore) Update(ctx context.Context, table string, filter store.Filter, patch store.Row, returning []string) (store.Row, error) {
	f.updates = append(f.updates, filter)
	if f.updateFn == nil {
		return patch, nil
	}
	return f.updateFn(ctx, table, filter, patch, returning)
}

// fakeBlobStore returns a deterministic URL for every upload.
type fakeBlobStore struct {
	uploads []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	f.uploads = append(f.uploads, path)
	return "https://cdn.example.com/" + path, nil
}
