package translate

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey("刺繍対応", "EN")

	if !strings.HasPrefix(key, "translate:en:") {
		t.Errorf("key = %q, want translate:en: prefix", key)
	}
	if strings.Contains(key, "刺繍") {
		t.Error("raw text must not appear in cache keys")
	}
	if key != CacheKey("刺繍対応", "en") {
		t.Error("key should be case-insensitive on target language")
	}
	if key == CacheKey("別のテキスト", "EN") {
		t.Error("different texts should produce different keys")
	}
}

func TestEncodeDecodeEntry(t *testing.T) {
	entry := &Entry{
		Text:       "embroidery available",
		SourceLang: "JA",
		CachedAt:   1725000000,
	}

	data, err := EncodeEntry(entry)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}

	decoded, err := DecodeEntry(data)
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if decoded.Text != entry.Text || decoded.SourceLang != entry.SourceLang || decoded.CachedAt != entry.CachedAt {
		t.Errorf("decoded = %+v, want %+v", decoded, entry)
	}
}

func TestDecodeEntry_Garbage(t *testing.T) {
	if _, err := DecodeEntry([]byte("not cbor at all")); err == nil {
		t.Error("expected error decoding garbage")
	}
}

// newTestRedisCache connects to the Redis instance named by TEST_REDIS_ADDR.
// Tests are skipped when the variable is unset or the server is unreachable.
func newTestRedisCache(t *testing.T, ttl time.Duration) *RedisCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping Redis cache tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis at %s not reachable: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, ttl)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache := newTestRedisCache(t, time.Minute)
	ctx := context.Background()
	key := CacheKey("redis round trip "+t.Name(), "EN")

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get before Set: %v", err)
	}
	if got != nil {
		t.Fatal("expected miss before Set")
	}

	entry := &Entry{Text: "hello", SourceLang: "JA", CachedAt: time.Now().Unix()}
	if err := cache.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get after Set: %v", err)
	}
	if got == nil || got.Text != "hello" || got.SourceLang != "JA" {
		t.Errorf("got = %+v, want stored entry", got)
	}
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache := newTestRedisCache(t, time.Second)
	ctx := context.Background()
	key := CacheKey("redis ttl "+t.Name(), "EN")

	if err := cache.Set(ctx, key, &Entry{Text: "ephemeral"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expected entry to expire")
	}
}
