package actor

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/fluxorio/actormesh/failfast"
)

// Spawn creates a new top-level actor in sys from the given initial
// state and returns its address. PA carries the pointer-receiver
// lifecycle methods; it does not appear in any parameter type, so Go
// cannot infer it; both type arguments must be given explicitly, e.g.
// Spawn[Counter, *Counter](sys, Counter{}).
func Spawn[A any, PA ActorPtr[A]](sys *System, state A, opts ...Option[A]) Address[A] {
	addr := spawn[A, PA](sys, state, opts...)
	sys.roots.add(childHandle{
		stop:  func() { _ = DoSend[A, stopRequest, struct{}](addr, stopRequest{}) },
		alive: addr.IsAlive,
	})
	return addr
}

// SpawnChild creates a new actor as a child of the actor owning parent.
// The child is stopped automatically when the parent stops, and its
// own Address is returned so the parent can keep talking to it.
func SpawnChild[C any, PC ActorPtr[C], A any](parent *Context[A], state C, opts ...Option[C]) Address[C] {
	failfast.NotNil(parent, "actor.SpawnChild: parent")
	addr := spawn[C, PC](parent.sys, state, opts...)
	parent.children.add(childHandle{
		stop:  func() { addr.core.stop.fire() },
		alive: addr.IsAlive,
	})
	return addr
}

// stopRequest is the internal message System.Shutdown (through each
// root actor's childHandle) uses to ask a root actor to terminate
// through the ordinary handler-bind machinery, so every actor gets one
// automatically.
type stopRequest struct{}

func (stopRequest) ActorResult() struct{} { return struct{}{} }

func spawn[A any, PA ActorPtr[A]](sys *System, state A, opts ...Option[A]) Address[A] {
	failfast.NotNil(sys, "actor.Spawn: sys")

	reg := newHandlerRegistry[A]()
	for _, opt := range opts {
		opt(reg)
	}
	if reg.mailboxCapacity <= 0 {
		reg.mailboxCapacity = sys.opts.DefaultMailboxCapacity
	}
	failfast.If(reg.mailboxCapacity > 0, "actor.Spawn: resolved mailbox capacity must be positive, got %d", reg.mailboxCapacity)

	core := &actorCore[A]{
		id:       nextID(),
		mailbox:  make(chan envelope[A], reg.mailboxCapacity),
		closed:   newStopSignal(),
		stop:     newStopSignal(),
		watchers: newWatcherList(),
		handlers: reg,
		metrics:  sys.metrics,
	}
	core.alive.Store(true)
	addr := Address[A]{core: core}
	sys.metrics.RecordSpawn()

	doneCtx, cancel := context.WithCancel(context.Background())
	ctx := &Context[A]{
		sys:      sys,
		self:     addr,
		children: newChildList(),
		log:      sys.log.WithFields(map[string]interface{}{"actor_id": fmt.Sprint(core.id)}),
		stopSig:  core.stop,
		doneCtx:  doneCtx,
		cancel:   cancel,
	}

	// Cancel the context handed to async computations as soon as a stop
	// or shutdown is requested, so a suspended computation can return.
	go func() {
		select {
		case <-core.stop.Ch():
		case <-sys.shutdown.Ch():
		case <-doneCtx.Done():
		}
		cancel()
	}()

	// Every actor can be Context.Stop()'d via the ordinary handler path
	// too, for callers that only hold an Address[A] and want to request
	// a stop without a Context.
	reg.bindSync(reflect.TypeOf(stopRequest{}), HandlerFunc[A, stopRequest, struct{}](func(_ *A, _ stopRequest, ctx *Context[A]) struct{} {
		ctx.Stop()
		return struct{}{}
	}))

	// Add before the goroutine starts: a loop that terminates
	// immediately must not Done a counter that has not been bumped yet.
	sys.wg.Add(1)
	go runLoop[A, PA](sys, core, ctx, state)

	return addr
}

func runLoop[A any, PA ActorPtr[A]](sys *System, core *actorCore[A], ctx *Context[A], state A) {
	var cause TerminationCause
	var panicErr error

	ptr := PA(&state)

	defer func() {
		if r := recover(); r != nil {
			cause = CausePanicked
			panicErr = fmt.Errorf("actor %d panicked: %v", core.id, r)
			ctx.log.Error(panicErr.Error())
		}
		terminate(sys, core, ctx, ptr, cause, panicErr)
	}()

	if err := ptr.Started(ctx); err != nil {
		cause = CauseStopped
		ctx.log.Warnf("actor %d Started returned error: %v", core.id, err)
		return
	}

	for {
		select {
		case e := <-core.mailbox:
			safeApply(ctx, ptr, e)
		case <-ctx.stopSig.Ch():
			cause = CauseStopped
			return
		case <-sys.shutdown.Ch():
			cause = CauseShutdown
			return
		}
	}
}

// safeApply runs a single envelope and records its handler latency. A
// panic here is not recovered locally; it propagates to runLoop's
// defer, which is the actor's one and only termination boundary.
func safeApply[A any](ctx *Context[A], ptr *A, e envelope[A]) {
	start := time.Now()
	e.apply(ptr, ctx)
	ctx.sys.metrics.RecordHandler(time.Since(start))
}

func terminate[A any, PA ActorPtr[A]](sys *System, core *actorCore[A], ctx *Context[A], ptr PA, cause TerminationCause, panicErr error) {
	core.alive.Store(false)
	core.closed.fire()
	ctx.cancel()
	sys.metrics.RecordTermination(cause.String(), cause == CausePanicked)

	core.watchers.notifyAll(core.id)
	ctx.children.stopAll()

	func() {
		defer func() {
			if r := recover(); r != nil {
				ctx.log.Error(fmt.Sprintf("actor %d Stopped panicked: %v", core.id, r))
			}
		}()
		ptr.Stopped(ctx)
	}()

	_ = sys.diag.Record(DiagnosticEvent{
		ActorID: core.id,
		Cause:   cause,
		Err:     panicErr,
		At:      time.Now(),
	})

	sys.wg.Done()
}
