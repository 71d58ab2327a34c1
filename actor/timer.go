package actor

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimerHandle cancels a scheduled RunLater/RunInterval callback. Cancel
// is cooperative: it stops future firings but does not interrupt a
// firing already in flight on the event loop.
type TimerHandle struct {
	cancelled atomic.Bool
	stop      func()
}

// Cancel prevents any further firing of the timer. Safe to call more
// than once and from any goroutine.
func (t *TimerHandle) Cancel() {
	t.cancelled.Store(true)
	if t.stop != nil {
		t.stop()
	}
}

func (t *TimerHandle) isCancelled() bool {
	return t.cancelled.Load()
}

// runLater schedules fn to be delivered to the actor's own mailbox after
// d, so it runs with the same single-goroutine, FIFO-with-everything-
// else guarantee as any other message.
func runLater[A any](ctx *Context[A], d time.Duration, fn func()) *TimerHandle {
	h := &TimerHandle{}
	timer := time.AfterFunc(d, func() {
		if h.isCancelled() {
			return
		}
		deliverFunc(ctx, fn)
	})
	h.stop = func() { timer.Stop() }
	return h
}

// runInterval schedules fn to run repeatedly every d until cancelled or
// the actor stops.
func runInterval[A any](ctx *Context[A], d time.Duration, fn func()) *TimerHandle {
	h := &TimerHandle{}
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if h.isCancelled() {
					continue
				}
				deliverFunc(ctx, fn)
			case <-done:
				return
			case <-ctx.self.core.closed.Ch():
				return
			}
		}
	}()
	var stopOnce sync.Once
	h.stop = func() {
		stopOnce.Do(func() { close(done) })
	}
	return h
}

// deliverFunc posts an arbitrary callback onto the actor's own mailbox as
// a funcEnvelope, so timer callbacks never run concurrently with regular
// message handling. A full or closed mailbox silently drops the firing,
// the same "best effort, no retry" contract as every other enqueue path.
func deliverFunc[A any](ctx *Context[A], fn func()) {
	_ = ctx.self.tryEnqueue(&funcEnvelope[A]{fn: fn})
}
