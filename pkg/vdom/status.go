package vdom

import (
	"reflect"
	"sync"
)

// Status is the shared mutable cell backing a component instance: the
// component's state, the dirty flags the engine consults before re-rendering,
// and the change-notification hook that asks the owning application to
// schedule a render pass.
//
// A Status cell outlives any single render pass and is owned by exactly one
// component instance. Render passes are strictly sequential, but SetState
// may be called from any goroutine (timers, external feeds); the cell's
// internal lock serializes those writes with the engine's reads.
type Status[S any] struct {
	mu         sync.Mutex
	state      S
	observed   S
	stateDirty bool
	propsDirty bool
	notify     func()
}

// NewStatus creates a status cell with a zero-value state. notify is invoked
// after every SetState call to request a re-render pass from the application
// root; it may be nil.
func NewStatus[S any](notify func()) *Status[S] {
	return &Status[S]{notify: notify}
}

// State returns the current state value.
func (s *Status[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Refresh returns the current state and records it as the component's
// observed baseline. Components call this from RefreshState, which the
// engine invokes exactly once per render pass before the render step.
func (s *Status[S]) Refresh() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observed = s.state
	return s.state
}

// SetState applies mutator to the held state, marks the state dirty when the
// result differs from the last observed value, and fires the
// change-notification hook. This is the only way a component triggers its
// own re-render outside of a props update from its parent.
func (s *Status[S]) SetState(mutator func(*S)) {
	s.mu.Lock()
	mutator(&s.state)
	if !reflect.DeepEqual(s.state, s.observed) {
		s.stateDirty = true
	}
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// MarkPropsDirty records that the component received changed props.
func (s *Status[S]) MarkPropsDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.propsDirty = true
}

// TakeStateDirty reports whether the state was dirtied and clears the flag.
func (s *Status[S]) TakeStateDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.stateDirty
	s.stateDirty = false
	return d
}

// TakePropsDirty reports whether the props were dirtied and clears the flag.
func (s *Status[S]) TakePropsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.propsDirty
	s.propsDirty = false
	return d
}
