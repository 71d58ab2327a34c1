package remote

import (
	"context"
	"sync"

	"github.com/fluxorio/actormesh/actorlog"
	"github.com/fluxorio/actormesh/observability/tracing"
)

// Router maps an Envelope's message_type to the handler responsible for
// it. An unregistered type falls through to the default handler if one
// is set; otherwise it is logged and dropped, matching the decode
// failure policy for the remote adapter as a whole.
type Router struct {
	mu       sync.RWMutex
	routes   map[string]EnvelopeHandler
	fallback EnvelopeHandler
	log      actorlog.Logger
}

// NewRouter creates an empty Router logging through log. A nil log
// falls back to actorlog.NewDefault().
func NewRouter(log actorlog.Logger) *Router {
	if log == nil {
		log = actorlog.NewDefault()
	}
	return &Router{routes: make(map[string]EnvelopeHandler), log: log}
}

// Handle registers h for messageType.
func (r *Router) Handle(messageType string, h EnvelopeHandler) {
	r.mu.Lock()
	r.routes[messageType] = h
	r.mu.Unlock()
}

// SetDefault registers the handler used when no route matches.
func (r *Router) SetDefault(h EnvelopeHandler) {
	r.mu.Lock()
	r.fallback = h
	r.mu.Unlock()
}

// Dispatch routes e to its handler and returns any response Envelope
// the handler produced. Unroutable envelopes are logged and dropped,
// never returned as an error to the caller: a routing failure on the
// recipient side is observable only as an eventual Timeout at the
// sender, not a process-level error here.
func (r *Router) Dispatch(e Envelope) *Envelope {
	_, span := tracing.StartRemoteReceive(context.Background(), e.SenderNode, e.MessageType)
	defer span.End()

	r.mu.RLock()
	h, ok := r.routes[e.MessageType]
	fallback := r.fallback
	r.mu.RUnlock()

	if !ok {
		if fallback == nil {
			r.log.Warnf("remote: no route for message_type %q, dropped", e.MessageType)
			return nil
		}
		h = fallback
	}

	resp, err := h(e)
	if err != nil {
		r.log.Error("remote: handler for " + e.MessageType + " failed: " + err.Error())
		span.RecordError(err)
		return nil
	}
	return resp
}
