package actor

import (
	"context"
	"time"

	"github.com/fluxorio/actormesh/actorlog"
)

// Context is the handle a running actor's handlers and lifecycle hooks
// use to reach back into the runtime: its own address, its children, its
// logger, and timer scheduling. A Context is only ever touched from the
// actor's own event-loop goroutine.
type Context[A any] struct {
	sys      *System
	self     Address[A]
	children *childList
	log      actorlog.Logger
	stopSig  *stopSignal
	doneCtx  context.Context
	cancel   context.CancelFunc
}

// Address returns this actor's own address. Handing it out to other
// actors is how mesh topologies are built.
func (c *Context[A]) Address() Address[A] {
	return c.self
}

// ID returns this actor's identity.
func (c *Context[A]) ID() ID {
	return c.self.ID()
}

// Log returns a logger pre-scoped with this actor's ID.
func (c *Context[A]) Log() actorlog.Logger {
	return c.log
}

// System returns the actor system this actor belongs to.
func (c *Context[A]) System() *System {
	return c.sys
}

// Stop requests this actor's own termination (cause: Stopped). It
// returns immediately; termination runs asynchronously on the event
// loop after the in-flight handler returns.
func (c *Context[A]) Stop() {
	c.stopSig.fire()
}

// StopChildren requests termination of every child spawned through this
// Context, without stopping this actor itself.
func (c *Context[A]) StopChildren() {
	c.children.stopAll()
}

// Watch subscribes this actor to target's death: when target terminates,
// a Terminated{ID: target.ID()} message is delivered to this actor's own
// mailbox, provided it has bound a handler for Terminated via Bind. If
// no such handler is bound the notification is silently dropped, the
// same as any other delivery-to-nowhere in this runtime.
func (c *Context[A]) Watch(target watchable) {
	self := c.self
	target.watch(func(id ID) {
		_ = TrySend[A, Terminated, struct{}](self, Terminated{ID: id})
	})
}

// watchable is any Address[X], exposed without X so Context.Watch can
// accept addresses of any actor type.
type watchable interface {
	watch(func(ID))
}

func (a Address[A]) watch(sink func(ID)) {
	a.Watch(sink)
}

// RunLater schedules fn to run once after d, serialized with ordinary
// message handling.
func (c *Context[A]) RunLater(d time.Duration, fn func()) *TimerHandle {
	return runLater(c, d, fn)
}

// RunInterval schedules fn to run every d until cancelled or the actor
// stops.
func (c *Context[A]) RunInterval(d time.Duration, fn func()) *TimerHandle {
	return runInterval(c, d, fn)
}
