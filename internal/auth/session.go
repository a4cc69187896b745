package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"drawtrack/internal/core"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "drawtrack_session"

// DefaultSessionTTL matches the cookie lifetime handed to browsers.
const DefaultSessionTTL = 24 * time.Hour

type session struct {
	identity  core.Identity
	expiresAt time.Time
}

// SessionStore keeps sessions in process memory. Restarting the server logs
// everyone out.
type SessionStore struct {
	mu           sync.RWMutex
	sessions     map[string]session
	ttl          time.Duration
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// NewSessionStore creates a session store and starts its cleanup goroutine.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		sessions:    make(map[string]session),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}
	go s.startCleanup()
	return s
}

// TTL returns the configured session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create starts a session for the identity and returns its id.
func (s *SessionStore) Create(identity core.Identity) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session{
		identity:  identity,
		expiresAt: time.Now().Add(s.ttl),
	}
	return id
}

// Get resolves a session id to its identity. Expired sessions are treated as
// absent and removed lazily on the next cleanup pass.
func (s *SessionStore) Get(id string) (core.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || time.Now().After(sess.expiresAt) {
		return core.Identity{}, false
	}
	return sess.identity, true
}

// Delete ends the session. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// ActiveSessions returns the number of unexpired sessions.
func (s *SessionStore) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, sess := range s.sessions {
		if now.Before(sess.expiresAt) {
			n++
		}
	}
	return n
}

// Stop shuts down the cleanup goroutine.
func (s *SessionStore) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *SessionStore) startCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *SessionStore) cleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
