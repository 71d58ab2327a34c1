// Package natscluster is a pluggable cluster transport: it publishes
// and consumes framed remote.Envelope bytes over NATS subjects instead
// of a single point-to-point Connection. It is wiring for the
// membership placeholder's data plane, not an implementation of gossip
// or failure detection.
package natscluster

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/fluxorio/actormesh/observability/metrics"
	"github.com/fluxorio/actormesh/remote"
)

// Config configures a Cluster.
type Config struct {
	// URL is the NATS server URL, e.g. "nats://127.0.0.1:4222".
	URL string
	// Prefix is prepended to every subject. Default: "actormesh".
	Prefix string
	// Name is an optional NATS connection name.
	Name string
}

// Cluster publishes and subscribes framed envelopes over NATS subjects
// named "<prefix>.<target_actor>".
type Cluster struct {
	nc     *nats.Conn
	prefix string
	codec  remote.Codec
}

// Connect dials cfg.URL and returns a ready-to-use Cluster.
func Connect(cfg Config) (*Cluster, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "actormesh"
	}
	nc, err := nats.Connect(url, func(o *nats.Options) error {
		if cfg.Name != "" {
			o.Name = cfg.Name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("natscluster: connect: %w", err)
	}
	return &Cluster{nc: nc, prefix: prefix, codec: remote.ProtoWireCodec{}}, nil
}

func (c *Cluster) subject(targetActor string) string {
	return c.prefix + "." + targetActor
}

// Publish encodes e and publishes it to the subject named after its
// TargetActor.
func (c *Cluster) Publish(e remote.Envelope) error {
	frame, err := c.codec.Encode(e)
	if err != nil {
		return fmt.Errorf("natscluster: encode: %w", err)
	}
	if err := c.nc.Publish(c.subject(e.TargetActor), frame); err != nil {
		return err
	}
	metrics.GetMetrics().RecordFrameSent("nats")
	return nil
}

// Subscribe registers handler to be called for every envelope
// published against targetActor. Decode failures are dropped, never
// surfaced to handler.
func (c *Cluster) Subscribe(targetActor string, handler func(remote.Envelope)) (*nats.Subscription, error) {
	return c.nc.Subscribe(c.subject(targetActor), func(msg *nats.Msg) {
		e, err := c.codec.Decode(msg.Data)
		if err != nil {
			return
		}
		metrics.GetMetrics().RecordFrameReceived("nats")
		handler(e)
	})
}

// Close closes the underlying NATS connection without draining pending
// messages first.
func (c *Cluster) Close() {
	c.nc.Close()
}

// EmbeddedServer starts an in-process NATS server for tests and local
// development, so natscluster can be exercised without a standalone
// nats-server process. Callers must call Shutdown when done.
func EmbeddedServer(port int) (*server.Server, error) {
	opts := &server.Options{Host: "127.0.0.1", Port: port, NoLog: true, NoSigs: true}
	srv, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("natscluster: start embedded server: %w", err)
	}
	go srv.Start()
	if !srv.ReadyForConnections(5 * time.Second) {
		srv.Shutdown()
		return nil, fmt.Errorf("natscluster: embedded server not ready")
	}
	return srv, nil
}
