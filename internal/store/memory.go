package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
)

var (
	// ErrNotFound is returned when a session id is unknown or has expired.
	ErrNotFound = errors.New("dashboard session not found")
)

type session struct {
	board    *dashboard.Store
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory registry of dashboard sessions.
// Each session owns exactly one dashboard.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	sessions map[string]*session

	// retention configuration
	maxSessions int           // max live sessions; least recently used is evicted
	maxIdle     time.Duration // idle time after which a session expires

	assets dashboard.Assets
	clock  clockwork.Clock
}

// NewMemoryStore creates a registry with optional limits.
// If maxSessions or maxIdle is <= 0, that limit is treated as unlimited.
func NewMemoryStore(maxSessions int, maxIdle time.Duration, assets dashboard.Assets, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		sessions:    make(map[string]*session),
		maxSessions: maxSessions,
		maxIdle:     maxIdle,
		assets:      assets,
		clock:       clock,
	}
}

// Create starts a session with a fresh store and enforces the capacity limit.
func (s *MemoryStore) Create() (string, *dashboard.Store) {
	id := uuid.NewString()
	board := dashboard.NewStore(s.assets)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &session{board: board, lastSeen: s.clock.Now()}

	if s.maxSessions > 0 && len(s.sessions) > s.maxSessions {
		s.evictLocked(len(s.sessions)-s.maxSessions, id)
	}
	return id, board
}

// Get returns the session's store and marks the session as active.
func (s *MemoryStore) Get(id string) (*dashboard.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.clock.Now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	sess.lastSeen = now
	return sess.board, nil
}

// Delete ends a session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// All returns the stores of every unexpired session without touching them.
func (s *MemoryStore) All() []*dashboard.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	out := make([]*dashboard.Store, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if !s.expired(sess, now) {
			out = append(out, sess.board)
		}
	}
	return out
}

// Prune removes expired sessions and returns how many were dropped.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of sessions held, expired ones included until pruned.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) expired(sess *session, now time.Time) bool {
	return s.maxIdle > 0 && now.Sub(sess.lastSeen) > s.maxIdle
}

// evictLocked drops the n least recently used sessions, never keep.
func (s *MemoryStore) evictLocked(n int, keep string) {
	type candidate struct {
		id       string
		lastSeen time.Time
	}
	candidates := make([]candidate, 0, len(s.sessions))
	for id, sess := range s.sessions {
		if id != keep {
			candidates = append(candidates, candidate{id: id, lastSeen: sess.lastSeen})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].lastSeen.Before(candidates[j].lastSeen)
	})
	for i := 0; i < n && i < len(candidates); i++ {
		delete(s.sessions, candidates[i].id)
	}
}

var _ dashboard.SessionStore = (*MemoryStore)(nil)
