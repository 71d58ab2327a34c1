package actor

import "sync"

// stopSignal is a cheap, idempotent, fire-once broadcast used for both an
// actor's own stop request and (via System) the process-wide shutdown
// broadcast. Firing is safe to call from any goroutine, any number of
// times.
type stopSignal struct {
	once sync.Once
	ch   chan struct{}
}

func newStopSignal() *stopSignal {
	return &stopSignal{ch: make(chan struct{})}
}

func (s *stopSignal) fire() {
	s.once.Do(func() { close(s.ch) })
}

func (s *stopSignal) Ch() <-chan struct{} {
	return s.ch
}
