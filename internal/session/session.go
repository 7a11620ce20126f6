// Package session keeps per-visitor state between requests: how many designs
// were made, the last text used, and the last suggestion list. Rendering is
// stateless; handlers read and update a Session around it.
package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is a snapshot of one visitor's state.
type Session struct {
	ID          string
	Designs     int
	LastText    string
	LastPrompt  string
	Suggestions []string
	Touched     time.Time
}

// CachedSuggestions returns the cached list when prompt matches the last one.
func (s Session) CachedSuggestions(prompt string) ([]string, bool) {
	if prompt == "" || prompt != s.LastPrompt || len(s.Suggestions) == 0 {
		return nil, false
	}
	return slices.Clone(s.Suggestions), true
}

// Store holds sessions in memory.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
// A non-positive ttl keeps sessions forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, sessions: map[string]*Session{}}
}

// Get returns the session for id, creating a new one when id is empty,
// unknown or expired. The returned value is a copy.
func (s *Store) Get(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id).clone()
}

// Update applies fn to the session for id under the store lock and returns
// the updated copy. A new session is created as in Get.
func (s *Store) Update(id string, fn func(*Session)) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getLocked(id)
	fn(sess)
	sess.Touched = s.now()
	return sess.clone()
}

// Prune drops sessions idle longer than the ttl and returns how many were removed.
func (s *Store) Prune() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) getLocked(id string) *Session {
	now := s.now()
	if sess, ok := s.sessions[id]; ok && !s.expired(sess, now) {
		return sess
	}
	delete(s.sessions, id)
	sess := &Session{ID: uuid.NewString(), Touched: now}
	s.sessions[sess.ID] = sess
	return sess
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.Touched) > s.ttl
}

func (sess *Session) clone() Session {
	c := *sess
	c.Suggestions = slices.Clone(sess.Suggestions)
	return c
}
