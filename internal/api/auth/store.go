package auth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

const sessionTokenBytes = 32

// SessionStore maps opaque session tokens to user IDs.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	Create(userID int64) (token string, expiresAt time.Time, err error)
	Get(token string) (userID int64, ok bool)
	Delete(token string)
	// DeleteUser drops every session belonging to userID.
	DeleteUser(userID int64)
	// Prune removes expired sessions and reports how many were dropped.
	Prune() int
}

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type sessionRecord struct {
	UserID    int64
	ExpiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a restart.
type MemoryStore struct {
	ttl   time.Duration
	clock Clock

	mu       sync.Mutex
	sessions map[string]sessionRecord
}

// NewMemoryStore returns a store whose sessions live for ttl.
// A nil clock uses the system time.
func NewMemoryStore(ttl time.Duration, clock Clock) *MemoryStore {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryStore{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]sessionRecord),
	}
}

// TTL reports how long new sessions stay valid.
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

func (s *MemoryStore) Create(userID int64) (string, time.Time, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := s.clock.Now().Add(s.ttl)
	s.mu.Lock()
	s.sessions[token] = sessionRecord{UserID: userID, ExpiresAt: expiresAt}
	s.mu.Unlock()

	return token, expiresAt, nil
}

func (s *MemoryStore) Get(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	if !s.clock.Now().Before(session.ExpiresAt) {
		delete(s.sessions, token)
		return 0, false
	}
	return session.UserID, true
}

func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *MemoryStore) DeleteUser(userID int64) {
	s.mu.Lock()
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}

func (s *MemoryStore) Prune() int {
	now := s.clock.Now()
	pruned := 0
	s.mu.Lock()
	for token, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, token)
			pruned++
		}
	}
	s.mu.Unlock()
	return pruned
}

// Len reports the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newSessionToken() (string, error) {
	token := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(token), nil
}
