package service

import (
	"sync"
	"time"
)

// BrowserFactory builds the browser for a new session
type BrowserFactory func(sessionID string) *RepositoryBrowser

type sessionEntry struct {
	browser  *RepositoryBrowser
	lastSeen time.Time
}

// SessionStore keeps one RepositoryBrowser per browser session
type SessionStore struct {
	factory  BrowserFactory
	now      func() time.Time
	sessions map[string]*sessionEntry
	mu       sync.Mutex
}

// NewSessionStore creates a new session store
func NewSessionStore(factory BrowserFactory) *SessionStore {
	return &SessionStore{
		factory:  factory,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Get returns the session's browser, creating it on first access
func (s *SessionStore) Get(sessionID string) (browser *RepositoryBrowser, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{browser: s.factory(sessionID)}
		s.sessions[sessionID] = entry
	}
	entry.lastSeen = s.now()
	return entry.browser, !ok
}

// Prune drops sessions idle for longer than maxIdle and returns how many went
func (s *SessionStore) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	pruned := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
