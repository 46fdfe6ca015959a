package config

import (
	"strings"
	"time"
)

// Cache backends.
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// CacheConfig selects and tunes the look-aside cache in front of the
// record store.  With Backend "redis" and no reachable Redis server the
// service runs uncached.
type CacheConfig struct {
	Backend        string        // redis | memory | none
	TTL            time.Duration // lifetime of every cached entry
	Prefix         string        // namespace prepended to every key
	MemoryCapacity int           // max entries for the in-process backend
}

// LoadCacheConfig reads CACHE_* variables.  Unknown backends disable
// caching.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Backend:        strings.ToLower(envStr("CACHE_BACKEND", CacheRedis)),
		TTL:            envDur("CACHE_TTL", 5*time.Minute),
		Prefix:         envStr("CACHE_PREFIX", "eldercare"),
		MemoryCapacity: envInt("CACHE_MEMORY_CAPACITY", 10000),
	}
	switch cfg.Backend {
	case CacheRedis, CacheMemory, CacheNone:
	default:
		cfg.Backend = CacheNone
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.MemoryCapacity < 1 {
		cfg.MemoryCapacity = 10000
	}
	return cfg
}
