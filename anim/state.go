package anim

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// State is the pause switch shared by every animation of an Env.
// Subscribers are notified synchronously on every transition, in the order
// they subscribed. A panicking subscriber is isolated: the panic is traced
// and the remaining subscribers are notified nevertheless.
type State struct {
	mu          sync.Mutex
	paused      bool
	subscribers *treemap.Map // id -> func(bool)
	nextID      int
}

// NewState creates an unpaused state.
func NewState() *State {
	return &State{
		subscribers: treemap.NewWithIntComparator(),
	}
}

// Paused reports whether animations are paused.
func (s *State) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetPaused sets the pause flag. If the flag changes, every subscriber is
// called with the new value before SetPaused returns.
func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	if s.paused == paused {
		s.mu.Unlock()
		return
	}
	s.paused = paused
	subscribers := s.subscribers.Values()
	s.mu.Unlock()
	tracer().Infof("animations paused = %v, notifying %d subscribers", paused, len(subscribers))
	for _, sub := range subscribers {
		notify(sub.(func(bool)), paused)
	}
}

// Toggle flips the pause flag and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	paused := !s.paused
	s.mu.Unlock()
	s.SetPaused(paused)
	return paused
}

// Subscribe registers fn for pause transitions. The returned function
// removes the subscription; it may be called any number of times.
func (s *State) Subscribe(fn func(paused bool)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subscribers.Put(id, fn)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.subscribers.Remove(id)
		s.mu.Unlock()
	}
}

// Subscribers returns the number of active subscriptions.
func (s *State) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribers.Size()
}

func notify(fn func(bool), paused bool) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("pause subscriber failed: %v", r)
		}
	}()
	fn(paused)
}
