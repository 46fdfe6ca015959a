package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryBackend keeps entries in process with sturdyc.  The TTL is
// fixed when the backend is built, so the ttl argument of Set is
// ignored.
type MemoryBackend struct {
	client *sturdyc.Client[[]byte]
}

// NewMemoryBackend builds a sharded in-process store holding up to
// capacity entries, evicting 10% of a shard when it fills up.
func NewMemoryBackend(capacity int, ttl time.Duration) *MemoryBackend {
	const (
		numShards       = 10
		evictPercentage = 10
	)
	if capacity < numShards {
		capacity = numShards
	}
	return &MemoryBackend{client: sturdyc.New[[]byte](capacity, numShards, ttl, evictPercentage)}
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := b.client.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	b.client.Set(key, val)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		b.client.Delete(k)
	}
	return nil
}
