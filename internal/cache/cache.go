// Package cache is the look-aside cache in front of the record store.
// Entries are scoped per owner and encoded with msgpack; a failing
// backend degrades to direct reads and never fails a request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// ErrMiss is returned by a Backend when key is not stored.
var ErrMiss = errors.New("cache miss")

// Backend is a byte-oriented key/value store with per-entry expiry.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cache stores encoded entities in a Backend.  A nil *Cache or a Cache
// without a backend never hits and never stores.
type Cache struct {
	backend Backend
	ttl     time.Duration
	prefix  string
	log     *zap.Logger
}

const defaultPrefix = "eldercare"

// New wraps backend.  A nil backend disables caching.
func New(backend Backend, ttl time.Duration, prefix string, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Cache{backend: backend, ttl: ttl, prefix: prefix, log: log}
}

// Enabled reports whether entries are actually stored.
func (c *Cache) Enabled() bool { return c != nil && c.backend != nil }

// Key renders "{prefix}:user:{owner}:{kind}:{part}".
func (c *Cache) Key(owner model.OwnerID, kind, part string) string {
	prefix := defaultPrefix
	if c != nil {
		prefix = c.prefix
	}
	return fmt.Sprintf("%s:user:%d:%s:%s", prefix, uint64(owner), kind, part)
}

func (c *Cache) get(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := msgpack.Unmarshal(raw, dst); err != nil {
		c.log.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		c.del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	raw, err := msgpack.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.backend.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) del(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.backend.Delete(ctx, keys...); err != nil {
		c.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Fetch returns the value stored at key or, on a miss, calls load and
// stores its result.  Errors from load are returned unchanged and
// nothing is stored.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	if c.get(ctx, key, &v) {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.set(ctx, key, v)
	return v, nil
}
