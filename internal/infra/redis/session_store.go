package redis

import (
	"context"
	"sync"
	"time"

	"dogslife-quiz/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions own a timer goroutine and subscriber channels, so the session
//     itself stays in a local map.
//   - Redis marks liveness under quiz:session:{id} with the creation time, so
//     other instances and operators can see which sessions exist.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.ID()), session.CreatedAt().UTC().Format(time.RFC3339), s.ttl).Err()
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	var stale []*app.Session
	for id, session := range s.sessions {
		if session.Expired(maxAge) {
			stale = append(stale, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	ctx := context.Background()
	for _, session := range stale {
		session.Close()
		_ = s.client.Del(ctx, s.key(session.ID())).Err()
	}
	return len(stale)
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
