package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vet-records/internal/ports/store"
)

type entry struct {
	doc store.Document
	seq uint64
}

// DocumentStore guarda los documentos en memoria (modo local y tests).
type DocumentStore struct {
	mu   sync.RWMutex
	seq  uint64
	data map[string]map[string]entry
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{data: make(map[string]map[string]entry)}
}

func (s *DocumentStore) Insert(ctx context.Context, collection, id string, body []byte, createdAt time.Time) error {
	if id == "" {
		return errors.New("document id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.data[collection]
	if !ok {
		col = make(map[string]entry)
		s.data[collection] = col
	}
	if _, exists := col[id]; exists {
		return errors.New("document already exists")
	}
	s.seq++
	cp := make([]byte, len(body))
	copy(cp, body)
	col[id] = entry{doc: store.Document{ID: id, Body: cp, CreatedAt: createdAt}, seq: s.seq}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[collection][id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	return e.doc, nil
}

func (s *DocumentStore) List(ctx context.Context, collection string, limit int) ([]store.Document, error) {
	s.mu.RLock()
	entries := make([]entry, 0, len(s.data[collection]))
	for _, e := range s.data[collection] {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].doc.CreatedAt.Equal(entries[j].doc.CreatedAt) {
			return entries[i].doc.CreatedAt.After(entries[j].doc.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]store.Document, len(entries))
	for i, e := range entries {
		out[i] = e.doc
	}
	return out, nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.data[collection], id)
	return nil
}

func (s *DocumentStore) Count(ctx context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection]), nil
}

func (s *DocumentStore) Close() error { return nil }
