package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	lowimpl "github.com/redis/go-redis/v9"

	"vet-records/internal/ports/store"
)

const keyPrefix = "vetrecords"

// DocumentStore guarda cada documento en un hash y mantiene un sorted set
// por colección (score = created_at en ms) para listar y contar.
type DocumentStore struct {
	internal *lowimpl.Client
}

// Open conecta usando una URL redis://[:pw@]host:port/db y hace ping.
func Open(url string) (*DocumentStore, error) {
	opts, err := lowimpl.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	c := lowimpl.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &DocumentStore{internal: c}, nil
}

func NewDocumentStore(c *lowimpl.Client) *DocumentStore {
	return &DocumentStore{internal: c}
}

func docKey(collection, id string) string {
	return keyPrefix + ":doc:" + collection + ":" + id
}

func indexKey(collection string) string {
	return keyPrefix + ":idx:" + collection
}

func (s *DocumentStore) Insert(ctx context.Context, collection, id string, body []byte, createdAt time.Time) error {
	if id == "" {
		return errors.New("document id required")
	}
	key := docKey(collection, id)
	ok, err := s.internal.HSetNX(ctx, key, "body", string(body)).Result()
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	if !ok {
		return fmt.Errorf("insert %s/%s: document already exists", collection, id)
	}
	_, err = s.internal.TxPipelined(ctx, func(pipe lowimpl.Pipeliner) error {
		pipe.HSet(ctx, key, "created_at", strconv.FormatInt(createdAt.UTC().UnixNano(), 10))
		pipe.ZAdd(ctx, indexKey(collection), lowimpl.Z{Score: float64(createdAt.UnixMilli()), Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (store.Document, error) {
	vals, err := s.internal.HMGet(ctx, docKey(collection, id), "body", "created_at").Result()
	if err != nil {
		return store.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decodeHash(id, vals)
}

func decodeHash(id string, vals []any) (store.Document, error) {
	if len(vals) < 2 || vals[0] == nil {
		return store.Document{}, store.ErrNotFound
	}
	body, _ := vals[0].(string)
	doc := store.Document{ID: id, Body: []byte(body)}
	if raw, ok := vals[1].(string); ok {
		if ns, err := strconv.ParseInt(raw, 10, 64); err == nil {
			doc.CreatedAt = time.Unix(0, ns).UTC()
		}
	}
	return doc, nil
}

func (s *DocumentStore) List(ctx context.Context, collection string, limit int) ([]store.Document, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.internal.ZRevRange(ctx, indexKey(collection), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	cmds := make([]*lowimpl.SliceCmd, len(ids))
	_, err = s.internal.Pipelined(ctx, func(pipe lowimpl.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HMGet(ctx, docKey(collection, id), "body", "created_at")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	out := make([]store.Document, 0, len(ids))
	for i, cmd := range cmds {
		doc, err := decodeHash(ids[i], cmd.Val())
		if errors.Is(err, store.ErrNotFound) {
			// índice huérfano
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	n, err := s.internal.Del(ctx, docKey(collection, id)).Result()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if err := s.internal.ZRem(ctx, indexKey(collection), id).Err(); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.internal.ZCard(ctx, indexKey(collection)).Result()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return int(n), nil
}

func (s *DocumentStore) Close() error {
	if s.internal == nil {
		return nil
	}
	return s.internal.Close()
}
