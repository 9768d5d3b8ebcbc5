package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	dom "github.com/ghislainnkundayezu/notes-app-api/internal/domain"
)

const keyPrefix = "notes:"

// NoteCache caches per-user note list results in Redis. Keys embed the
// owner id so one user's cached notes are never served to another.
type NoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNoteCache returns a new NoteCache.
func NewNoteCache(rdb *redis.Client, ttl time.Duration) *NoteCache {
	return &NoteCache{rdb: rdb, ttl: ttl}
}

// ListKey builds a cache key for one owner and filter variant, e.g.
// "all", "cat:<id>" or "q:<search>".
func ListKey(owner uuid.UUID, variant string) string {
	return keyPrefix + owner.String() + ":" + strings.ToLower(strings.TrimSpace(variant))
}

// GetList returns the cached list for the key or nil on miss.
func (c *NoteCache) GetList(ctx context.Context, key string) ([]dom.Note, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Note
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list under the key.
func (c *NoteCache) SetList(ctx context.Context, key string, list []dom.Note) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Invalidate removes every cached list of the owner (called on any
// note or category mutation by that owner).
func (c *NoteCache) Invalidate(ctx context.Context, owner uuid.UUID) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+owner.String()+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
