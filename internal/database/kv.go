package database

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// KV is the key-value surface the cart ledger, identity store and purchase
// records persist through. Two implementations exist: Redis for real runs and
// an in-process map when Redis is unavailable.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisKV struct {
	client *redis.Client
}

// NewRedisKV wraps a live Redis client as a KV.
func NewRedisKV(client *redis.Client) KV {
	return &redisKV{client: client}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryKV struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryKV returns an in-process KV. State lives as long as the process.
func NewMemoryKV() KV {
	return &memoryKV{entries: map[string]memoryEntry{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *memoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// SelectKV picks the Redis-backed KV when a client is available and the
// in-process map otherwise, mirroring how the rest of the service tolerates
// a missing Redis.
func SelectKV(client *redis.Client) KV {
	if client == nil {
		return NewMemoryKV()
	}
	return NewRedisKV(client)
}
