package session

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Store keeps one value per session in memory. Values are created on first
// access and live until they are swept or the process exits.
type Store[T any] struct {
	newValue func() T
	now      func() time.Time

	mutex   sync.Mutex
	entries map[string]*entry[T]
}

// NewStore creates an empty store that builds values with newValue.
func NewStore[T any](newValue func() T) *Store[T] {
	return &Store[T]{
		newValue: newValue,
		now:      time.Now,
		entries:  make(map[string]*entry[T]),
	}
}

// Get returns the value for sessionID, creating it if needed, and marks the
// session as active.
func (s *Store[T]) Get(sessionID string) T {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, found := s.entries[sessionID]
	if !found {
		e = &entry[T]{value: s.newValue()}
		s.entries[sessionID] = e
	}
	e.lastSeen = s.now()

	return e.value
}

// Lookup returns the value for sessionID without creating or touching it.
func (s *Store[T]) Lookup(sessionID string) (T, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, found := s.entries[sessionID]
	if !found {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Sweep drops sessions idle for longer than idle and returns how many were removed.
func (s *Store[T]) Sweep(idle time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}

	return removed
}

func (s *Store[T]) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.entries)
}
