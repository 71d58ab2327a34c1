package actor

// envelope is the type-erased carrier the mailbox stores. A mailbox holds
// a single homogeneous element type (envelope[A]) regardless of how many
// distinct message types actor A handles; each concrete envelope already
// carries its own resolved handler, so dispatch never needs a runtime
// type switch once the envelope is built.
type envelope[A any] interface {
	// apply takes the message out of its slot, invokes the bound
	// handler, and, if a reply slot is present, posts the Result.
	// Called from the actor's own event loop goroutine only.
	apply(actorPtr *A, ctx *Context[A])
}

// syncEnvelope wraps a Sync handler: it returns the Result immediately.
type syncEnvelope[A any, M Message[R], R any] struct {
	msg     M
	reply   chan R // nil for fire-and-forget sends; buffered capacity 1 otherwise
	handler HandlerFunc[A, M, R]
}

func (e *syncEnvelope[A, M, R]) apply(actorPtr *A, ctx *Context[A]) {
	result := e.handler(actorPtr, e.msg, ctx)
	if e.reply != nil {
		// Buffered with capacity 1 and a single writer: never blocks.
		// If the caller already gave up waiting, the value just sits
		// unread.
		e.reply <- result
	}
}

// asyncEnvelope wraps an Async handler: the handler returns a suspendable
// computation, which the event loop drives inline to completion before
// the next envelope is polled.
type asyncEnvelope[A any, M Message[R], R any] struct {
	msg     M
	reply   chan R
	handler AsyncHandlerFunc[A, M, R]
}

func (e *asyncEnvelope[A, M, R]) apply(actorPtr *A, ctx *Context[A]) {
	compute := e.handler(actorPtr, e.msg, ctx)
	result := compute(ctx.doneCtx)
	if e.reply != nil {
		e.reply <- result
	}
}

// funcEnvelope carries a timer callback into the ordinary mailbox so it
// is serialized with every other message instead of running on its own
// goroutine.
type funcEnvelope[A any] struct {
	fn func()
}

func (e *funcEnvelope[A]) apply(*A, *Context[A]) {
	e.fn()
}
