package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/persistence"
)

// ErrSessionNotFound is returned for unknown, destroyed or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps login sessions keyed by an opaque id.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}

// MemorySessionStore keeps sessions in process memory. Sessions are lost on restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session), now: time.Now}
}

func (s *MemorySessionStore) Create(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// Len is the number of sessions held, expired or not.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) sweepLocked() int {
	now := s.now()
	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

const redisSessionNamespace = "session"

// RedisSessionStore keeps sessions as JSON values that expire with the session.
type RedisSessionStore struct {
	redis *persistence.Redis
	now   func() time.Time
}

func NewRedisSessionStore(r *persistence.Redis) *RedisSessionStore {
	return &RedisSessionStore{redis: r, now: time.Now}
}

func (s *RedisSessionStore) key(id string) string {
	return s.redis.Key(redisSessionNamespace, id)
}

func (s *RedisSessionStore) Create(ctx context.Context, session domain.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return s.redis.SetJSON(ctx, s.key(session.ID), session, ttl)
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	err := s.redis.GetJSON(ctx, s.key(id), &session)
	if errors.Is(err, persistence.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, s.key(id))
}
