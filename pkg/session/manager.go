// Package session implements server-side session state: an in-memory
// manager mapping opaque tokens to per-client records holding the
// authentication binding and the shopping cart, plus the signed cookie
// that carries the token.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/adnanprojects/userdir/pkg/logger"
)

// DefaultTTL is the fixed session lifetime, counted from creation.
const DefaultTTL = time.Hour

// Session is one client's server-side state. Auth and cart mutations on
// a single session are serialized by its own mutex, so concurrent
// requests bearing the same token never lose updates.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu         sync.Mutex
	userID     int
	cart       []interface{}
	lastAccess time.Time
}

// UserID returns the bound user id, or 0 when the session is anonymous.
func (s *Session) UserID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Authenticated reports whether a user is bound to the session.
func (s *Session) Authenticated() bool {
	return s.UserID() != 0
}

// Bind marks the session as authenticated for the given user.
func (s *Session) Bind(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// Unbind drops the authentication binding, returning the session to the
// anonymous state. The cart is kept; only expiry releases it.
func (s *Session) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = 0
}

// LastAccess returns when the session was last touched.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = now
}

// Manager owns every live session. Sessions expire a fixed TTL after
// creation, independent of activity.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a session manager with the given TTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Resolve returns the live session for the token. A missing, unknown or
// expired token yields a fresh anonymous session with a new id; created
// reports whether that happened, so the caller knows to reissue the cookie.
func (m *Manager) Resolve(token string) (sess *Session, created bool) {
	now := m.now()

	if token != "" {
		m.mu.RLock()
		existing, ok := m.sessions[token]
		m.mu.RUnlock()

		if ok && now.Before(existing.ExpiresAt) {
			existing.touch(now)
			return existing, false
		}
		if ok {
			m.Expire(token)
		}
	}

	id, err := generateSessionID()
	if err != nil {
		// crypto/rand failing is not recoverable per-request; fall back
		// to a timestamp-derived id rather than dropping the request.
		id = fmt.Sprintf("fallback-%d", now.UnixNano())
	}

	sess = &Session{
		ID:         id,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
		lastAccess: now,
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	return sess, true
}

// Get returns the live session with the given id, if any.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.now().After(sess.ExpiresAt) {
		return nil, false
	}
	return sess, true
}

// Touch records activity on the session.
func (m *Manager) Touch(id string) {
	if sess, ok := m.Get(id); ok {
		sess.touch(m.now())
	}
}

// Expire removes the session, releasing its cart and auth binding.
func (m *Manager) Expire(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep removes every expired session and returns how many were dropped.
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs Sweep on the given interval until the context ends.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration, log logger.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if dropped := m.Sweep(); dropped > 0 && log != nil {
					log.Debug("swept expired sessions", map[string]interface{}{
						"dropped": dropped,
					})
				}
			}
		}
	}()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns 128 bits of hex-encoded entropy.
func generateSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
