package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how long a translation stays cached. Supplier
// copy changes rarely, so a day is a comfortable window.
const DefaultCacheTTL = 24 * time.Hour

// Entry is one cached translation, stored CBOR-encoded in Redis.
type Entry struct {
	Text       string `cbor:"text"`
	SourceLang string `cbor:"source_lang,omitempty"`
	CachedAt   int64  `cbor:"cached_at"`
}

// Cache stores translation results keyed by text and target language.
// Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
}

// CacheKey derives the Redis key for a text and target language pair.
// The text is hashed so arbitrary supplier copy never appears in keys.
func CacheKey(text, targetLang string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("translate:%s:%s", strings.ToLower(targetLang), hex.EncodeToString(sum[:16]))
}

// EncodeEntry serializes an entry for storage.
func EncodeEntry(entry *Entry) ([]byte, error) {
	data, err := cbor.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return data, nil
}

// DecodeEntry deserializes a stored entry.
func DecodeEntry(data []byte) (*Entry, error) {
	var entry Entry
	if err := cbor.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &entry, nil
}

// RedisCache implements Cache over a shared Redis instance.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed translation cache. A non-positive
// ttl falls back to DefaultCacheTTL.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeEntry(data)
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry) error {
	data, err := EncodeEntry(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
