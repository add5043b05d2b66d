package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Colecciones conocidas.
const (
	Booklets     = "booklets"
	Invoices     = "invoices"
	Attestations = "attestations"
	IDCards      = "id_cards"
)

// Collections lista las colecciones en el orden del dashboard.
func Collections() []string {
	return []string{Booklets, Invoices, Attestations, IDCards}
}

// Document es un registro serializado tal como lo guarda el store.
type Document struct {
	ID        string
	Body      []byte
	CreatedAt time.Time
}

// DocumentStore guarda registros sin esquema, agrupados por colección.
type DocumentStore interface {
	Insert(ctx context.Context, collection, id string, body []byte, createdAt time.Time) error
	Get(ctx context.Context, collection, id string) (Document, error)
	// List devuelve los más recientes primero. limit <= 0 => todos.
	List(ctx context.Context, collection string, limit int) ([]Document, error)
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int, error)
	Close() error
}

// Collection es un acceso tipado (JSON) a una colección del store.
type Collection[T any] struct {
	store DocumentStore
	name  string
}

func NewCollection[T any](s DocumentStore, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Insert(ctx context.Context, id string, rec T, createdAt time.Time) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", c.name, err)
	}
	return c.store.Insert(ctx, c.name, id, body, createdAt)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(doc.Body, &out); err != nil {
		return out, fmt.Errorf("%s: decode %s: %w", c.name, id, err)
	}
	return out, nil
}

func (c *Collection[T]) List(ctx context.Context, limit int) ([]T, error) {
	docs, err := c.store.List(ctx, c.name, limit)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var rec T
		if err := json.Unmarshal(d.Body, &rec); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", c.name, d.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	return c.store.Count(ctx, c.name)
}
