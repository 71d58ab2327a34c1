package actor

import (
	"reflect"
	"sync"
)

// handlerRegistry is the per-actor-type dispatch vtable: reflect.Type of
// the message maps to the (type-erased) handler bound to it at spawn
// time. It is populated once, before the event loop starts, by the
// Option values passed to Spawn/SpawnChild, and is read-only from then
// on except for the rare case of a handler bound after spawn (not
// exposed; bindings are spawn-time only, matching "compile-time-known"
// message sets from the data model).
type handlerRegistry[A any] struct {
	mu              sync.RWMutex
	sync_           map[reflect.Type]any
	async_          map[reflect.Type]any
	mailboxCapacity int
}

func newHandlerRegistry[A any]() *handlerRegistry[A] {
	return &handlerRegistry[A]{
		sync_:  make(map[reflect.Type]any),
		async_: make(map[reflect.Type]any),
	}
}

func (r *handlerRegistry[A]) bindSync(t reflect.Type, h any) {
	r.mu.Lock()
	r.sync_[t] = h
	r.mu.Unlock()
}

func (r *handlerRegistry[A]) bindAsync(t reflect.Type, h any) {
	r.mu.Lock()
	r.async_[t] = h
	r.mu.Unlock()
}

func (r *handlerRegistry[A]) lookupSync(t reflect.Type) (any, bool) {
	r.mu.RLock()
	h, ok := r.sync_[t]
	r.mu.RUnlock()
	return h, ok
}

func (r *handlerRegistry[A]) lookupAsync(t reflect.Type) (any, bool) {
	r.mu.RLock()
	h, ok := r.async_[t]
	r.mu.RUnlock()
	return h, ok
}

// Option configures an actor at spawn time: a handler binding or a
// mailbox-capacity override.
type Option[A any] func(*handlerRegistry[A])

// Bind registers the synchronous handler for message type M on actor A.
// Call once per (actor, message) pair before Spawn/SpawnChild.
func Bind[A any, M Message[R], R any](h HandlerFunc[A, M, R]) Option[A] {
	var zero M
	t := reflect.TypeOf(zero)
	return func(reg *handlerRegistry[A]) {
		reg.bindSync(t, h)
	}
}

// BindAsync registers the async-handler variant for message type M.
func BindAsync[A any, M Message[R], R any](h AsyncHandlerFunc[A, M, R]) Option[A] {
	var zero M
	t := reflect.TypeOf(zero)
	return func(reg *handlerRegistry[A]) {
		reg.bindAsync(t, h)
	}
}

// WithMailboxCapacity overrides the default mailbox capacity (64) for
// this actor instance.
func WithMailboxCapacity[A any](n int) Option[A] {
	return func(reg *handlerRegistry[A]) {
		reg.mailboxCapacity = n
	}
}
