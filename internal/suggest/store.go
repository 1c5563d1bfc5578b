package suggest

import "sync"

// Store holds one client's State for frontends that serve
// several users from concurrent goroutines.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates a store with an empty state.
func NewStore() *Store {
	return &Store{}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces the state with fn's result unless fn fails.
func (s *Store) Update(fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	return next, nil
}

// Begin starts a new fetch attempt if the selection allows it and
// returns the new state. ok is false when the selection is incomplete.
func (s *Store) Begin() (st State, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanSuggest() {
		return s.state, false
	}
	s.state = s.state.Begin()
	return s.state, true
}

// Apply folds a result into the state; stale generations are dropped.
func (s *Store) Apply(gen uint64, r Result) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, applied := s.state.Apply(gen, r)
	if applied {
		s.state = next
	}
	return s.state, applied
}

// Reset clears selection and results but keeps the generation counter
// moving so in-flight responses stay stale.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Generation: s.state.Generation + 1}
}
