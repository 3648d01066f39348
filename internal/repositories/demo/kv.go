// Package demo is the local ephemeral store used by demo actors. Each
// collection is one JSON array of canonical entities kept under a well-known
// key of a key-value backend.
package demo

import (
	"context"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"
)

// Well-known keys of the demo collections.
const (
	KeyProperties = "pg_demo_properties"
	KeyRooms      = "pg_demo_rooms"
	KeyTenants    = "pg_demo_tenants"
	KeyUsers      = "pg_demo_users"
)

// KV is the key-value backend the demo store persists to.
type KV interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

var _ KV = (*MemoryKV)(nil)

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = v
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// RedisKV keeps values in Redis without expiry.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// NewRedisClient connects to addr and checks the connection.
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

var _ KV = (*RedisKV)(nil)

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
