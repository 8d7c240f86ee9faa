// Package cache provides a process-wide, capacity-bounded, time-limited
// in-memory store. Instances are constructed once at startup and passed
// by reference into the pipeline so tests can substitute fakes.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	setAt   time.Time
	expires time.Time
}

// Store is a TTL + capacity bounded key/value cache. Safe for
// concurrent use. Lookups for the same key are not coalesced; callers
// must tolerate duplicate in-flight fills.
type Store[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// New creates a Store holding at most capacity entries, each valid for ttl.
func New[V any](capacity int, ttl time.Duration) *Store[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store[V]{
		entries:  make(map[string]entry[V]),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithNow fixes the clock for testing.
func (s *Store[V]) WithNow(now func() time.Time) *Store[V] {
	s.now = now
	return s
}

// Get returns the cached value and true if present and unexpired.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().After(e.expires) {
		if ok {
			delete(s.entries, key)
		}
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value, evicting expired entries first and then the
// oldest entries until the capacity bound holds.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	for len(s.entries) >= s.capacity {
		oldestKey := ""
		var oldest time.Time
		for k, e := range s.entries {
			if oldestKey == "" || e.setAt.Before(oldest) {
				oldestKey = k
				oldest = e.setAt
			}
		}
		delete(s.entries, oldestKey)
	}

	s.entries[key] = entry[V]{value: value, setAt: now, expires: now.Add(s.ttl)}
}

// Len returns the current number of entries, expired ones included.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
