// Package cache memoizes serialized extraction results for batch runs.
// Entries are keyed by pattern version, urgency strategy and transcript hash,
// so a pattern or strategy change never serves a stale result.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/storyintake/internal/model"
)

// Cache stores opaque byte values
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key of one transcript under a pattern version and strategy
func Key(patternVersion, strategy, transcript string) string {
	hash := sha256.Sum256([]byte(transcript))
	return fmt.Sprintf("storyintake:%s:%s:%s", patternVersion, strategy, hex.EncodeToString(hash[:]))
}

// New builds the configured cache: layered memory+disk when enabled, a
// no-op cache otherwise
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return Nop{}
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

// GetResult decodes a cached extraction result
func GetResult(c Cache, key string) (model.ExtractionResult, bool) {
	data, ok := c.Get(key)
	if !ok {
		return model.ExtractionResult{}, false
	}
	var result model.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = c.Delete(key)
		return model.ExtractionResult{}, false
	}
	return result, true
}

// SetResult stores an extraction result under key with the cache's default TTL
func SetResult(c Cache, key string, result model.ExtractionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return c.Set(key, data, 0)
}

// Nop is a cache that stores nothing
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)               { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
