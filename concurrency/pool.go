// Package concurrency bounds the goroutine fan-out used to decode and
// dispatch inbound remote-transport frames. It must never be used to
// run per-actor mailbox handlers: that serialization guarantee comes
// from actor.System's own event loop, and routing handler execution
// through a shared pool here would let two frames addressed to the
// same actor run concurrently.
package concurrency

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fluxorio/actormesh/actorlog"
)

// Observer receives queue telemetry as the pool runs: the depth of the
// pending-frame queue after every enqueue/dequeue, and each frame
// rejected by a full queue. Implementations must be cheap and
// non-blocking; calls happen on submitter and worker goroutines.
type Observer interface {
	QueueDepth(depth int)
	Rejected()
}

type noopObserver struct{}

func (noopObserver) QueueDepth(int) {}
func (noopObserver) Rejected()      {}

// Config configures a Pool.
type Config struct {
	Workers   int             // decode/dispatch goroutines
	QueueSize int             // pending-frame buffer
	Observer  Observer        // nil disables telemetry
	Log       actorlog.Logger // nil falls back to actorlog.NewDefault()
}

// DefaultConfig sizes the pool for a single mesh node handling modest
// inbound fan-in; nodes expecting heavier remote traffic should size
// Workers against expected concurrent connections, not actor count.
func DefaultConfig() Config {
	return Config{
		Workers:   10,
		QueueSize: 1000,
	}
}

// Pool runs Tasks across a fixed set of worker goroutines so a burst
// of inbound remote frames cannot spawn one goroutine per frame. It
// has no opinion about what a Task does once dispatched; it is the
// caller's job to make sure Run only ever resolves a frame's
// destination and enqueues into that actor's own mailbox, never runs
// a handler body itself.
type Pool struct {
	workers  int
	tasks    chan Task
	depth    atomic.Int64
	observer Observer
	log      actorlog.Logger
	wg       sync.WaitGroup
	running  atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a Pool bound to ctx; cancelling ctx stops every
// worker as surely as calling Stop.
func NewPool(ctx context.Context, cfg Config) *Pool {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 100
	}
	if cfg.Observer == nil {
		cfg.Observer = noopObserver{}
	}
	if cfg.Log == nil {
		cfg.Log = actorlog.NewDefault()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:  cfg.Workers,
		tasks:    make(chan Task, cfg.QueueSize),
		observer: cfg.Observer,
		log:      cfg.Log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the worker goroutines. Calling Start on a running
// pool is an error.
func (p *Pool) Start() error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("concurrency: pool is already running")
	}
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker(i)
	}
	return nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.tasks:
			p.observer.QueueDepth(int(p.depth.Add(-1)))
			if err := task.Run(p.ctx); err != nil {
				p.log.Errorf("decode worker %d: %s frame (%d bytes) failed: %v", id, task.Kind, task.Bytes, err)
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// Stop cancels the pool's context and waits for every worker to exit,
// or for ctx to expire. Queued tasks that never started are dropped;
// an inbound frame is droppable by contract, the same as one that
// fails to decode.
func (p *Pool) Stop(ctx context.Context) error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("concurrency: stop timeout: %w", ctx.Err())
	}
}

// Submit enqueues task without blocking. A full queue counts against
// the pool's Rejected telemetry and returns ErrPoolFull; the caller
// decides whether that means backpressure or a dropped frame.
func (p *Pool) Submit(task Task) error {
	if task.Run == nil {
		return fmt.Errorf("concurrency: task has no Run")
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		p.observer.QueueDepth(int(p.depth.Add(1)))
		return nil
	case <-p.ctx.Done():
		return ErrPoolClosed
	default:
		p.observer.Rejected()
		return ErrPoolFull
	}
}

// SubmitWait enqueues task, blocking until the queue has room, ctx is
// cancelled, or the pool stops. This is the backpressure path a
// connection read loop uses: a burst of inbound frames slows the
// reader down instead of erroring it out.
func (p *Pool) SubmitWait(ctx context.Context, task Task) error {
	if task.Run == nil {
		return fmt.Errorf("concurrency: task has no Run")
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		p.observer.QueueDepth(int(p.depth.Add(1)))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// Workers reports the configured worker count.
func (p *Pool) Workers() int { return p.workers }

// IsRunning reports whether Start has been called and Stop has not.
func (p *Pool) IsRunning() bool { return p.running.Load() }
