package actor

import (
	"context"
	"sync"
	"time"

	"github.com/fluxorio/actormesh/actorlog"
)

// DiagnosticSink records lifecycle events (panics and terminations)
// for later inspection. It is distinct from mailbox persistence (never
// implemented: an actor's pending messages are not durable).
type DiagnosticSink interface {
	Record(event DiagnosticEvent) error
}

// DiagnosticEvent describes a single actor lifecycle transition worth
// recording.
type DiagnosticEvent struct {
	ActorID ID
	Cause   TerminationCause
	Err     error // set only when Cause is CausePanicked
	At      time.Time
}

// TerminationCause is the closed set of reasons an actor's event loop
// stops.
type TerminationCause int

const (
	// CauseDrained is reserved for the all-addresses-dropped lifecycle
	// path. Addresses are plain value copies, so the runtime cannot
	// observe the last clone going away without an explicit release
	// API; until one exists, no code path produces this cause and
	// termination always arrives as Stopped, Shutdown, or Panicked.
	CauseDrained TerminationCause = iota
	// CauseStopped means Context.Stop was called, or the parent
	// requested this actor stop.
	CauseStopped
	// CauseShutdown means the owning System shut down.
	CauseShutdown
	// CausePanicked means a handler or lifecycle hook panicked.
	CausePanicked
)

func (c TerminationCause) String() string {
	switch c {
	case CauseDrained:
		return "drained"
	case CauseStopped:
		return "stopped"
	case CauseShutdown:
		return "shutdown"
	case CausePanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

// Options configures a System.
type Options struct {
	// DefaultMailboxCapacity is used for any Spawn call that does not
	// pass WithMailboxCapacity. Defaults to 64.
	DefaultMailboxCapacity int
	Log                    actorlog.Logger
	Diagnostics            DiagnosticSink
	// Metrics reports spawn/termination/enqueue/handler-duration
	// counters. Nil disables instrumentation.
	Metrics Metrics
}

type noopSink struct{}

func (noopSink) Record(DiagnosticEvent) error { return nil }

// System owns the set of top-level actors spawned into it and the
// broadcast used to shut all of them down together.
type System struct {
	opts     Options
	shutdown *stopSignal
	roots    *childList
	wg       sync.WaitGroup
	log      actorlog.Logger
	diag     DiagnosticSink
	metrics  Metrics
}

// NewSystem creates a ready-to-use actor system.
func NewSystem(opts Options) *System {
	if opts.DefaultMailboxCapacity <= 0 {
		opts.DefaultMailboxCapacity = 64
	}
	if opts.Log == nil {
		opts.Log = actorlog.NewDefault()
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = noopSink{}
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}
	return &System{
		opts:     opts,
		shutdown: newStopSignal(),
		roots:    newChildList(),
		log:      opts.Log,
		diag:     opts.Diagnostics,
		metrics:  opts.Metrics,
	}
}

// Status is a point-in-time snapshot of the system's root actors,
// suitable for a diagnostics HTTP surface.
type Status struct {
	RootActorsAlive int
}

// Status reports how many top-level actors are currently alive. It
// does not recurse into children, which a root actor accounts for in
// its own termination sequence already.
func (s *System) Status() Status {
	return Status{RootActorsAlive: s.roots.aliveCount()}
}

// Shutdown broadcasts termination to every actor in the system (cause:
// Shutdown) and blocks until they have all finished, or stdCtx is
// cancelled first.
func (s *System) Shutdown(stdCtx context.Context) error {
	s.shutdown.fire()
	s.roots.stopAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-stdCtx.Done():
		return stdCtx.Err()
	}
}
