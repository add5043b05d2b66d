package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vet-records/internal/ports/store"
)

// DocumentStore guarda cada registro como JSON en la tabla documents.
type DocumentStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewDocumentStore(db *sql.DB, d Dialect) *DocumentStore {
	return &DocumentStore{db: db, dialect: d}
}

func (s *DocumentStore) Insert(ctx context.Context, collection, id string, body []byte, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO documents (collection, id, body, created_at)
		VALUES (?, ?, ?, ?)
	`), collection, id, string(body), createdAt.UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var (
		body string
		ts   int64
	)
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT body, created_at FROM documents
		WHERE collection = ? AND id = ?
	`), collection, id).Scan(&body, &ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return store.Document{ID: id, Body: []byte(body), CreatedAt: time.Unix(0, ts).UTC()}, nil
}

func (s *DocumentStore) List(ctx context.Context, collection string, limit int) ([]store.Document, error) {
	q := `SELECT id, body, created_at FROM documents WHERE collection = ? ORDER BY created_at DESC, id DESC`
	args := []any{collection}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	out := make([]store.Document, 0)
	for rows.Next() {
		var (
			d    store.Document
			body string
			ts   int64
		)
		if err := rows.Scan(&d.ID, &body, &ts); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		d.Body = []byte(body)
		d.CreatedAt = time.Unix(0, ts).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		DELETE FROM documents WHERE collection = ? AND id = ?
	`), collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT COUNT(*) FROM documents WHERE collection = ?
	`), collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}
