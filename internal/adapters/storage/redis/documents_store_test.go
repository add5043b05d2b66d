package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"vet-records/internal/ports/store"
)

func TestKeys(t *testing.T) {
	if got := docKey(store.Booklets, "abc"); got != "vetrecords:doc:booklets:abc" {
		t.Fatalf("docKey = %q", got)
	}
	if got := indexKey(store.IDCards); got != "vetrecords:idx:id_cards" {
		t.Fatalf("indexKey = %q", got)
	}
}

func TestDecodeHash(t *testing.T) {
	if _, err := decodeHash("x", []any{nil, nil}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	doc, err := decodeHash("x", []any{`{"a":1}`, "1709632800000000000"})
	if err != nil {
		t.Fatal(err)
	}
	if string(doc.Body) != `{"a":1}` || doc.CreatedAt.Year() != 2024 {
		t.Fatalf("unexpected doc %+v", doc)
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	if _, err := Open("not-a-url"); err == nil {
		t.Fatalf("expected error")
	}
}

// Requiere un Redis real: REDIS_URL=redis://localhost:6379/15
func TestDocumentStore_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	s, err := Open(url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	col := "test_" + uuid.NewString()
	now := time.Now()
	if err := s.Insert(ctx, col, "a", []byte("{}"), now); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, col, "b", []byte("{}"), now.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	docs, err := s.List(ctx, col, 0)
	if err != nil || len(docs) != 2 || docs[0].ID != "b" {
		t.Fatalf("List = %+v, %v", docs, err)
	}
	for _, id := range []string{"a", "b"} {
		if err := s.Delete(ctx, col, id); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := s.Count(ctx, col); n != 0 {
		t.Fatalf("Count = %d", n)
	}
}
