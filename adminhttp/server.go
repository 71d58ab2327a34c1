// Package adminhttp exposes a tiny operational HTTP surface over
// fasthttp: a liveness probe, the Prometheus scrape endpoint, a
// one-shot JSON snapshot of the actor system's root actors, and the
// node's recent log entries. It is not part of the actor runtime's
// message path; it is a side door for an operator or a load balancer's
// health check.
package adminhttp

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/fluxorio/actormesh/actor"
	"github.com/fluxorio/actormesh/actorlog"
	"github.com/fluxorio/actormesh/observability/metrics"
)

// Server serves /healthz, /metrics, /actors, and /logs.
type Server struct {
	sys      *actor.System
	recent   *actorlog.Ring
	srv      *fasthttp.Server
	metricsH fasthttp.RequestHandler
}

// New builds a Server reporting on sys's status. A nil gatherer falls
// back to metrics.DefaultRegistry. recent, when non-nil, is the ring
// of recent log entries served at /logs; nil leaves /logs a 404.
func New(sys *actor.System, gatherer prometheus.Gatherer, recent *actorlog.Ring) *Server {
	if gatherer == nil {
		gatherer = metrics.DefaultRegistry
	}
	s := &Server{sys: sys, recent: recent}
	s.metricsH = fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return s
}

// Handler is the fasthttp.RequestHandler routing all four endpoints.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		s.handleHealthz(ctx)
	case "/metrics":
		s.metricsH(ctx)
	case "/actors":
		s.handleActors(ctx)
	case "/logs":
		s.handleLogs(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *Server) handleHealthz(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBodyString("ok")
}

func (s *Server) handleActors(ctx *fasthttp.RequestCtx) {
	status := s.sys.Status()
	body, err := json.Marshal(status)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) handleLogs(ctx *fasthttp.RequestCtx) {
	if s.recent == nil {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	body, err := json.Marshal(s.recent.Snapshot())
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

// ListenAndServe starts a fasthttp server on addr serving Handler. It
// blocks until the listener fails or is closed.
func (s *Server) ListenAndServe(addr string) error {
	srv := &fasthttp.Server{Handler: s.Handler}
	s.srv = srv
	return srv.ListenAndServe(addr)
}

// Shutdown gracefully stops a running ListenAndServe call.
func (s *Server) Shutdown() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown()
}
