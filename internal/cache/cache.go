// Package cache stores fetched candidate pages so repeated runs over the
// same search results do not refetch them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the fetched-page cache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey generates the cache key for a candidate page URL.
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "citehunt:v1:" + hex.EncodeToString(hash[:])
}
