package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("auth: session not found")

// SessionStore maps a token id to the remote session secret it wraps.
type SessionStore interface {
	Save(ctx context.Context, id, secret string, ttl time.Duration) error
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (r *RedisSessionStore) Save(ctx context.Context, id, secret string, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKeyPrefix+id, secret, ttl).Err()
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (string, error) {
	secret, err := r.client.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return secret, err
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}

type memorySession struct {
	secret    string
	expiresAt time.Time
}

// MemorySessionStore backs single-instance deployments without Redis.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]memorySession{}}
}

func (m *MemorySessionStore) Save(_ context.Context, id, secret string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = memorySession{secret: secret, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok || time.Now().After(session.expiresAt) {
		delete(m.sessions, id)
		return "", ErrSessionNotFound
	}
	return session.secret, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
