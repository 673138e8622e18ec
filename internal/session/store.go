// Package session tracks per-browsing-session markers, kept separate from the
// durable counters so the site-visit tally stays monotonic.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a browsing session's marker lives.
const DefaultTTL = 30 * time.Minute

// Store records which sessions have already counted a site visit.
type Store interface {
	// MarkVisit marks the session and reports whether this was its first call
	// within the session's lifetime.
	MarkVisit(ctx context.Context, sessionID string) (bool, error)
	Close() error
}

// RedisStore keeps session markers in Redis so every service instance sees
// the same dedup state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// MarkVisit sets the session key if absent; the set succeeding means this is
// the session's first visit.
func (s *RedisStore) MarkVisit(ctx context.Context, sessionID string) (bool, error) {
	key := "session:visited:" + sessionID
	first, err := s.client.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark visit: %w", err)
	}
	return first, nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore is the single-instance fallback used when no Redis address is
// configured, and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	visited map[string]time.Time
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{visited: make(map[string]time.Time), ttl: ttl}
}

// MarkVisit marks the session in memory, expiring stale markers lazily.
func (s *MemoryStore) MarkVisit(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, at := range s.visited {
		if now.Sub(at) > s.ttl {
			delete(s.visited, id)
		}
	}
	if _, ok := s.visited[sessionID]; ok {
		return false, nil
	}
	s.visited[sessionID] = now
	return true, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
