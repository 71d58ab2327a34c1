// Package tracing wires the actor runtime's remote calls into
// OpenTelemetry, exporting spans to whichever backend an operator
// points it at: stdout for local development, Jaeger or Zipkin for a
// running cluster.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Exporter selects which span exporter Setup builds.
type Exporter string

const (
	// ExporterNone disables span export; Setup still installs a
	// TracerProvider so Tracer() never returns nil, it just discards
	// everything recorded.
	ExporterNone Exporter = "none"
	ExporterStdout Exporter = "stdout"
	ExporterJaeger Exporter = "jaeger"
	ExporterZipkin Exporter = "zipkin"
)

// Config configures Setup.
type Config struct {
	NodeID     string
	Exporter   Exporter
	Endpoint   string // jaeger collector URL or zipkin endpoint; ignored for stdout/none
	SampleRate float64
}

// Setup installs a global TracerProvider for this node and returns a
// shutdown func the caller must run (flushes buffered spans) on
// process exit.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	exp, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", "actormesh"),
			attribute.String("node_id", cfg.NodeID),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing: build resource: %w", err)
	}

	sampler := sdktrace.TraceIDRatioBased(cfg.SampleRate)
	if cfg.SampleRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else if cfg.SampleRate >= 1 {
		sampler = sdktrace.AlwaysSample()
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterJaeger:
		return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.Endpoint)))
	case ExporterZipkin:
		return zipkin.New(cfg.Endpoint)
	default:
		return nil, fmt.Errorf("tracing: unknown exporter %q", cfg.Exporter)
	}
}

// Tracer returns the package-wide tracer for remote-call spans.
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/fluxorio/actormesh/remote")
}

// StartRemoteSend starts a span named "remote.send" around sending a
// remote request frame to a peer node, tagged with the peer's node id
// and the actor kind as attributes.
func StartRemoteSend(ctx context.Context, peerNodeID, actorKind string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "remote.send",
		trace.WithAttributes(
			attribute.String("peer.node_id", peerNodeID),
			attribute.String("actor.kind", actorKind),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartRemoteReceive starts a span around handling an inbound remote
// request frame.
func StartRemoteReceive(ctx context.Context, fromNodeID, actorKind string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "remote.receive",
		trace.WithAttributes(
			attribute.String("peer.node_id", fromNodeID),
			attribute.String("actor.kind", actorKind),
		),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}
