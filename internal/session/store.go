package session

import (
	"sync"
	"time"
)

// Store is the session storage abstraction, keyed by opaque token
type Store interface {
	Get(id string) (*Data, bool)
	Put(d *Data)
	Destroy(id string)
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Data
	lifetime time.Duration
	clock    Clock
}

// NewMemoryStore creates a memory store. Sessions idle for longer than
// lifetime are swept by a background janitor.
func NewMemoryStore(lifetime time.Duration, clock Clock) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Data),
		lifetime: lifetime,
		clock:    clock,
	}
	go s.cleanup()
	return s
}

// Get returns the session for id, if any
func (s *MemoryStore) Get(id string) (*Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.sessions[id]
	return d, ok
}

// Put stores the session under its current ID
func (s *MemoryStore) Put(d *Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[d.ID] = d
}

// Destroy removes the session for id
func (s *MemoryStore) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// cleanup sweeps idle sessions periodically
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		s.mu.Lock()
		now := s.clock.Now()
		for id, d := range s.sessions {
			if !d.LastActivity.IsZero() && now.Sub(d.LastActivity) > s.lifetime {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
