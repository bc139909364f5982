// Package cache stores extracted handbook text between runs so repeat
// analyses of the same handbook skip PDF/HTML extraction.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is a byte-value store with per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// HandbookKey builds a cache key for a handbook file. The modification time
// is part of the key so an edited handbook never serves stale text.
func HandbookKey(path string, modTime time.Time) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s|%d", path, modTime.UnixNano()))
	return "matchpoint:handbook:v1:" + hex.EncodeToString(hash[:])
}
