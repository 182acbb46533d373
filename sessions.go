package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionStore keeps per-client view state keyed by a random ID
type sessionStore[T any] struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry[T]
	release func(T)
	now     func() time.Time
}

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

func newSessionStore[T any](release func(T)) *sessionStore[T] {
	return &sessionStore[T]{
		entries: make(map[string]*sessionEntry[T]),
		release: release,
		now:     time.Now,
	}
}

// Add stores the value built for a fresh ID
func (s *sessionStore[T]) Add(build func(id string) T) (string, T) {
	id := uuid.NewString()
	value := build(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &sessionEntry[T]{value: value, lastSeen: s.now()}
	return id, value
}

// Get returns the value for id and marks it as used
func (s *sessionStore[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	entry.lastSeen = s.now()
	return entry.value, true
}

// Remove drops id and releases its value
func (s *sessionStore[T]) Remove(id string) bool {
	s.mu.Lock()
	entry, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if ok && s.release != nil {
		s.release(entry.value)
	}
	return ok
}

// Sweep releases every entry unused for longer than maxIdle
func (s *sessionStore[T]) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var expired []T
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.value)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	if s.release != nil {
		for _, value := range expired {
			s.release(value)
		}
	}
	return len(expired)
}

// CloseAll releases every entry
func (s *sessionStore[T]) CloseAll() {
	s.mu.Lock()
	entries := s.entries
	s.entries = make(map[string]*sessionEntry[T])
	s.mu.Unlock()

	if s.release != nil {
		for _, entry := range entries {
			s.release(entry.value)
		}
	}
}

// Len returns the number of live entries
func (s *sessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
