package actor

import "context"

// Message is implemented by every value that can be sent to an actor.
// The type parameter R is the message's associated Result type: the
// value a handler bound to this message returns. Implementations are
// ordinary structs; the ActorResult method carries no behavior, it only
// anchors the message type to its result type at compile time:
//
//	type Add struct{ A, B int }
//	func (Add) ActorResult() int { return 0 }
type Message[R any] interface {
	ActorResult() R
}

// HandlerFunc is a synchronous handler binding an actor of type A to a
// message of type M, returning the message's Result type R immediately.
type HandlerFunc[A any, M Message[R], R any] func(actor *A, msg M, ctx *Context[A]) R

// AsyncHandlerFunc is a handler that instead returns a suspendable
// computation. The event loop drives the returned closure to completion,
// under the actor's stop context, before polling the next envelope, so
// per-actor serialization is preserved across the suspension.
type AsyncHandlerFunc[A any, M Message[R], R any] func(actor *A, msg M, ctx *Context[A]) func(stdCtx context.Context) R

// Terminated is delivered to every watcher exactly once when the watched
// actor's event loop ends, regardless of cause.
type Terminated struct {
	ID ID
}

// ActorResult implements Message[struct{}]: Terminated is fire-and-forget.
func (Terminated) ActorResult() struct{} { return struct{}{} }
