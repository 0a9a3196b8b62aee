package cache

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// Store is a TTL cache for rendered list payloads. Entries expire on
// their own; there is no write-through invalidation. Clear drops every
// entry at once.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Clear() error
	Close() error
}

var (
	// ErrCacheMiss is returned when a key is absent or expired
	ErrCacheMiss = errors.New("cache: key not found")
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = errors.New("cache is disabled")
)

// HashKey hashes key parts into a fixed-length cache key
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

func namespaceKey(key string) string {
	return "chirp:" + key
}
