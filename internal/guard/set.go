package guard

import "sync"

// Set keys guards by submission so unrelated forms never contend. Unlike the
// wizard's long-lived guard, a key is dropped when its submission finishes,
// so a completed form may be submitted again.
type Set struct {
	mu     sync.Mutex
	guards map[string]*Guard
}

// NewSet creates an empty guard set.
func NewSet() *Set {
	return &Set{guards: make(map[string]*Guard)}
}

// Begin takes the guard for key. It reports false when a submission for the
// same key is already in flight. On success the caller must invoke the
// returned release func when the submission finishes, success or failure.
func (s *Set) Begin(key string) (func(), bool) {
	s.mu.Lock()
	g, ok := s.guards[key]
	if !ok {
		g = &Guard{}
		s.guards[key] = g
	}
	s.mu.Unlock()

	if !g.Begin() {
		return nil, false
	}
	return func() {
		s.mu.Lock()
		delete(s.guards, key)
		s.mu.Unlock()
	}, true
}
