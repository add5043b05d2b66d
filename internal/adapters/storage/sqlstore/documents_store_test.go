package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-records/internal/ports/store"
)

func TestRebind(t *testing.T) {
	q := "SELECT * FROM documents WHERE collection = ? AND id = ?"
	if got := Postgres.Rebind(q); got != "SELECT * FROM documents WHERE collection = $1 AND id = $2" {
		t.Fatalf("postgres rebind = %q", got)
	}
	if got := MySQL.Rebind(q); got != q {
		t.Fatalf("mysql rebind changed query: %q", got)
	}
}

func TestDialectByName(t *testing.T) {
	for name, want := range map[string]string{"pgx": "postgres", "MySQL": "mysql", "sqlite3": "sqlite"} {
		d, err := DialectByName(name)
		if err != nil || d.Name != want {
			t.Fatalf("DialectByName(%q) = %v, %v", name, d.Name, err)
		}
	}
	if _, err := DialectByName("oracle"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDocumentStore_SQLite(t *testing.T) {
	db, err := Open(SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := NewDocumentStore(db, SQLite)
	defer s.Close()

	ctx := context.Background()
	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	if err := s.Insert(ctx, store.Invoices, "a", []byte(`{"n":1}`), base); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := s.Insert(ctx, store.Invoices, "b", []byte(`{"n":2}`), base.Add(time.Hour)); err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if err := s.Insert(ctx, store.Invoices, "a", []byte(`{}`), base); err == nil {
		t.Fatalf("duplicate insert should fail")
	}

	doc, err := s.Get(ctx, store.Invoices, "a")
	if err != nil || string(doc.Body) != `{"n":1}` || !doc.CreatedAt.Equal(base) {
		t.Fatalf("Get = %+v, %v", doc, err)
	}
	if _, err := s.Get(ctx, store.Booklets, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound across collections, got %v", err)
	}

	docs, err := s.List(ctx, store.Invoices, 0)
	if err != nil || len(docs) != 2 || docs[0].ID != "b" {
		t.Fatalf("List = %+v, %v", docs, err)
	}
	docs, _ = s.List(ctx, store.Invoices, 1)
	if len(docs) != 1 {
		t.Fatalf("limit ignored: %d", len(docs))
	}

	if err := s.Delete(ctx, store.Invoices, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, store.Invoices, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n, err := s.Count(ctx, store.Invoices); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}
