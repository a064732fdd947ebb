package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/i474232898/weather-now/internal/controller"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("no session for id")
)

// Session binds one page session to its widget controller.
type Session struct {
	ID         string
	Controller *controller.Controller

	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory session store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*Session

	// retention configuration
	maxSessions int           // max number of live sessions (0 = unlimited)
	maxAge      time.Duration // idle time after which a session is dropped (0 = never)

	newController func() *controller.Controller
	now           func() time.Time
}

// NewMemoryStore creates a new MemoryStore. newController builds the
// controller for each fresh session.
// If maxSessions is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration, newController func() *controller.Controller) *MemoryStore {
	return &MemoryStore{
		data:          make(map[string]*Session),
		maxSessions:   maxSessions,
		maxAge:        maxAge,
		newController: newController,
		now:           time.Now,
	}
}

// Get returns the session for id and marks it as seen.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// GetOrCreate returns the session for id, or a new session with a fresh id
// when id is empty or unknown. The boolean reports whether it was created.
func (s *MemoryStore) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}

	sess := &Session{
		ID:         uuid.NewString(),
		Controller: s.newController(),
		lastSeen:   s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Enforce retention by count.
	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.data[sess.ID] = sess
	return sess, true
}

// Sweep drops sessions idle for longer than maxAge and returns how many
// were removed. Sessions with a fetch in flight are kept.
func (s *MemoryStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for id, sess := range s.data {
		if sess.lastSeen.Before(cutoff) && !sess.Controller.Loading() {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.data {
		if sess.Controller.Loading() {
			continue
		}
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID = id
			oldest = sess.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.data, oldestID)
	}
}
