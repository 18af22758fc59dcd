// README: Session stores: Redis (JSON with TTL) and in-memory fallback.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "wanderplan:session:%s"

// Store loads and saves whole session states.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPrefix, id)
}

// RedisStore keeps each session as one JSON value that expires after ttl of inactivity.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redis *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	val, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeState(val)
}

func (s *RedisStore) Save(ctx context.Context, st *State) error {
	val, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.redis.Set(ctx, sessionKey(st.ID), val, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, sessionKey(id)).Err()
}

// MemoryStore is used when no Redis address is configured. Entries do not expire.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	val, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeState(val)
}

// Save stores an encoded copy so callers never share state with the store.
func (s *MemoryStore) Save(_ context.Context, st *State) error {
	val, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	s.mu.Lock()
	s.sessions[st.ID] = val
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func decodeState(val []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	st.ensureMaps()
	return &st, nil
}
