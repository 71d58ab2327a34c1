package actor

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"time"
)

// actorCore is the state shared between every clone of an Address: the
// mailbox, the termination machinery, and the handler vtable. Cloning an
// Address copies the struct but not actorCore: all clones enqueue into
// the same channel and observe the same stop signal.
type actorCore[A any] struct {
	id       ID
	mailbox  chan envelope[A]
	closed   *stopSignal // fired once the event loop stops draining the mailbox
	stop     *stopSignal // fired to request termination
	watchers *watcherList
	handlers *handlerRegistry[A]
	alive    atomic.Bool
	metrics  Metrics
}

// Address is a cloneable, comparable-by-identity reference to a spawned
// actor's mailbox. It carries no behaviour of its own: Send/DoSend/
// TrySend are free functions because Go methods cannot add the type
// parameters (M, R) needed to resolve the right handler.
type Address[A any] struct {
	core *actorCore[A]
}

// ID returns the stable identity of the actor this address refers to.
func (a Address[A]) ID() ID {
	return a.core.id
}

// IsAlive reports whether the actor has not yet completed termination.
// The result can be stale the instant it is returned; it is meant for
// diagnostics and tests, not for synchronizing sends.
func (a Address[A]) IsAlive() bool {
	return a.core.alive.Load()
}

// Watch registers sink to be invoked exactly once, with this actor's ID,
// when it terminates. If the actor has already terminated, sink fires
// immediately from the calling goroutine.
func (a Address[A]) Watch(sink func(ID)) {
	if !a.core.alive.Load() {
		sink(a.core.id)
		return
	}
	a.core.watchers.add(sink)
	// Re-check in case termination raced us between the Load and add.
	if !a.core.alive.Load() {
		a.core.watchers.notifyAll(a.core.id)
	}
}

func (a Address[A]) enqueue(e envelope[A]) error {
	select {
	case <-a.core.closed.Ch():
		a.core.metrics.RecordEnqueue("closed")
		return ErrMailboxClosed
	default:
	}
	select {
	case a.core.mailbox <- e:
		a.core.metrics.RecordEnqueue("ok")
		return nil
	case <-a.core.closed.Ch():
		a.core.metrics.RecordEnqueue("closed")
		return ErrMailboxClosed
	}
}

func (a Address[A]) tryEnqueue(e envelope[A]) error {
	select {
	case <-a.core.closed.Ch():
		a.core.metrics.RecordEnqueue("closed")
		return ErrMailboxClosed
	default:
	}
	select {
	case a.core.mailbox <- e:
		a.core.metrics.RecordEnqueue("ok")
		return nil
	default:
		a.core.metrics.RecordEnqueue("full")
		return ErrMailboxFull
	}
}

func lookupSyncHandler[A any, M Message[R], R any](reg *handlerRegistry[A]) (HandlerFunc[A, M, R], bool) {
	var zero M
	h, ok := reg.lookupSync(reflect.TypeOf(zero))
	if !ok {
		return nil, false
	}
	handler, ok := h.(HandlerFunc[A, M, R])
	return handler, ok
}

func lookupAsyncHandler[A any, M Message[R], R any](reg *handlerRegistry[A]) (AsyncHandlerFunc[A, M, R], bool) {
	var zero M
	h, ok := reg.lookupAsync(reflect.TypeOf(zero))
	if !ok {
		return nil, false
	}
	handler, ok := h.(AsyncHandlerFunc[A, M, R])
	return handler, ok
}

// Send delivers msg and blocks until the handler's Result is posted back,
// or stdCtx is cancelled first.
func Send[A any, M Message[R], R any](stdCtx context.Context, addr Address[A], msg M) (R, error) {
	var zero R
	handler, ok := lookupSyncHandler[A, M, R](addr.core.handlers)
	if !ok {
		return zero, ErrNoHandler
	}
	reply := make(chan R, 1)
	if err := addr.enqueue(&syncEnvelope[A, M, R]{msg: msg, reply: reply, handler: handler}); err != nil {
		return zero, err
	}
	return awaitReply(stdCtx, addr, reply)
}

// awaitReply waits on a send's reply slot. If the actor terminates
// first, a final non-blocking check distinguishes "handled just before
// the loop exited" from "envelope dropped, reply slot abandoned"; the
// latter surfaces as ErrMailboxClosed at the sender.
func awaitReply[A any, R any](stdCtx context.Context, addr Address[A], reply chan R) (R, error) {
	var zero R
	select {
	case r := <-reply:
		return r, nil
	case <-stdCtx.Done():
		return zero, stdCtx.Err()
	case <-addr.core.closed.Ch():
		select {
		case r := <-reply:
			return r, nil
		default:
			return zero, ErrMailboxClosed
		}
	}
}

// SendTimeout is Send bounded by a duration instead of a context. On
// expiry it returns ErrTimeout rather than the context package's own
// deadline error, keeping the stable error taxonomy intact; the
// envelope is not revoked and the handler may still run to completion.
func SendTimeout[A any, M Message[R], R any](addr Address[A], msg M, d time.Duration) (R, error) {
	stdCtx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	r, err := Send[A, M, R](stdCtx, addr, msg)
	if errors.Is(err, context.DeadlineExceeded) {
		return r, ErrTimeout
	}
	return r, err
}

// DoSend is fire-and-forget: it enqueues msg and returns once the
// envelope is in the mailbox, without waiting for the handler to run.
func DoSend[A any, M Message[R], R any](addr Address[A], msg M) error {
	handler, ok := lookupSyncHandler[A, M, R](addr.core.handlers)
	if !ok {
		return ErrNoHandler
	}
	return addr.enqueue(&syncEnvelope[A, M, R]{msg: msg, handler: handler})
}

// TrySend is DoSend's non-blocking variant: it fails immediately with
// ErrMailboxFull instead of waiting for room.
func TrySend[A any, M Message[R], R any](addr Address[A], msg M) error {
	handler, ok := lookupSyncHandler[A, M, R](addr.core.handlers)
	if !ok {
		return ErrNoHandler
	}
	return addr.tryEnqueue(&syncEnvelope[A, M, R]{msg: msg, handler: handler})
}

// SendAsync is Send for a message bound with BindAsync.
func SendAsync[A any, M Message[R], R any](stdCtx context.Context, addr Address[A], msg M) (R, error) {
	var zero R
	handler, ok := lookupAsyncHandler[A, M, R](addr.core.handlers)
	if !ok {
		return zero, ErrNoHandler
	}
	reply := make(chan R, 1)
	if err := addr.enqueue(&asyncEnvelope[A, M, R]{msg: msg, reply: reply, handler: handler}); err != nil {
		return zero, err
	}
	return awaitReply(stdCtx, addr, reply)
}

// DoSendAsync is the fire-and-forget variant for Async-bound messages.
func DoSendAsync[A any, M Message[R], R any](addr Address[A], msg M) error {
	handler, ok := lookupAsyncHandler[A, M, R](addr.core.handlers)
	if !ok {
		return ErrNoHandler
	}
	return addr.enqueue(&asyncEnvelope[A, M, R]{msg: msg, handler: handler})
}

// TrySendAsync is the non-blocking fire-and-forget variant.
func TrySendAsync[A any, M Message[R], R any](addr Address[A], msg M) error {
	handler, ok := lookupAsyncHandler[A, M, R](addr.core.handlers)
	if !ok {
		return ErrNoHandler
	}
	return addr.tryEnqueue(&asyncEnvelope[A, M, R]{msg: msg, handler: handler})
}
