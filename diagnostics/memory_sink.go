package diagnostics

import (
	"sync"

	"github.com/fluxorio/actormesh/actor"
)

// MemorySink keeps the last Capacity events in a ring buffer. It is
// meant for tests and local development; nothing here survives process
// restart.
type MemorySink struct {
	mu       sync.Mutex
	capacity int
	events   []actor.DiagnosticEvent
}

// NewMemorySink creates a sink retaining at most capacity events,
// oldest dropped first.
func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemorySink{capacity: capacity}
}

// Record implements actor.DiagnosticSink.
func (s *MemorySink) Record(event actor.DiagnosticEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	return nil
}

// Events returns a snapshot of the currently retained events, oldest
// first.
func (s *MemorySink) Events() []actor.DiagnosticEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]actor.DiagnosticEvent, len(s.events))
	copy(out, s.events)
	return out
}
