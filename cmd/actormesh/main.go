// Command actormesh boots a single node of the actor runtime: it loads
// a SystemConfig, starts an actor.System, registers a small demo actor,
// wires the remote adapter's Node around it, and serves the admin HTTP
// surface (/healthz, /metrics, /actors) until it receives SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluxorio/actormesh/actor"
	"github.com/fluxorio/actormesh/actorlog"
	"github.com/fluxorio/actormesh/adminhttp"
	"github.com/fluxorio/actormesh/config"
	"github.com/fluxorio/actormesh/diagnostics"
	"github.com/fluxorio/actormesh/observability/metrics"
	"github.com/fluxorio/actormesh/observability/tracing"
	"github.com/fluxorio/actormesh/remote"
)

// Greet is a request/response message handled by the demo Greeter
// actor, exercised end to end by both the local Send path and, once
// the remote adapter is wired to a transport, the router's "greet"
// route.
type Greet struct {
	Name string
}

func (Greet) ActorResult() string { return "" }

// Greeter is the process's one demo actor.
type Greeter struct {
	actor.NoLifecycle[Greeter]
	greeted int
}

func main() {
	configPath := flag.String("config", "", "path to a YAML/JSON SystemConfig file (optional)")
	adminAddr := flag.String("admin-addr", ":8090", "address for the /healthz, /metrics, /actors HTTP surface")
	dumpConfigPath := flag.String("dump-config", "", "write the resolved SystemConfig (defaults plus any -config/env overrides) as YAML to this path and exit")
	flag.Parse()

	cfg := config.DefaultSystemConfig()
	if *configPath != "" {
		loaded, err := config.LoadSystemConfig(*configPath)
		if err != nil {
			log.Fatalf("actormesh: load config: %v", err)
		}
		cfg = loaded
	}

	if *dumpConfigPath != "" {
		if err := config.SaveYAML(*dumpConfigPath, cfg); err != nil {
			log.Fatalf("actormesh: dump config: %v", err)
		}
		return
	}

	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		NodeID:     cfg.Remote.NodeID,
		Exporter:   tracing.ExporterStdout,
		SampleRate: 1,
	})
	if err != nil {
		log.Fatalf("actormesh: tracing setup: %v", err)
	}
	defer shutdownTracing(context.Background())

	diagSink := diagnostics.NewMemorySink(1024)

	// One shared logger for the whole node; recentLogs keeps its tail
	// available at the admin surface's /logs.
	recentLogs := actorlog.NewRing(256)
	logger := cfg.Logger(recentLogs)

	sys := actor.NewSystem(actor.Options{
		DefaultMailboxCapacity: cfg.DefaultMailboxCapacity,
		Log:                    logger,
		Diagnostics:            diagSink,
		Metrics:                metrics.GetMetrics(),
	})

	greeter := actor.Spawn[Greeter, *Greeter](sys, Greeter{},
		actor.Bind(func(g *Greeter, msg Greet, _ *actor.Context[Greeter]) string {
			g.greeted++
			return "hello, " + msg.Name
		}),
	)

	if cfg.Remote.NodeID != "" {
		node, err := remote.NewNode(cfg.Remote.NodeConfig(), logger)
		if err != nil {
			log.Fatalf("actormesh: remote node: %v", err)
		}
		node.Router.Handle("greet", func(e remote.Envelope) (*remote.Envelope, error) {
			reply, err := actor.SendTimeout[Greeter, Greet, string](greeter, Greet{Name: string(e.Payload)}, 2*time.Second)
			if err != nil {
				return nil, err
			}
			return &remote.Envelope{
				MessageType:   "greet",
				Payload:       []byte(reply),
				CorrelationID: e.CorrelationID,
				SenderNode:    node.ID,
				TargetActor:   e.SenderNode,
				IsResponse:    true,
			}, nil
		})
		log.Printf("actormesh: remote node %q ready (no listener started; wire a Connection to expose it)", node.ID)
	}

	admin := adminhttp.New(sys, metrics.DefaultRegistry, recentLogs)
	go func() {
		if err := admin.ListenAndServe(*adminAddr); err != nil {
			log.Printf("actormesh: admin http server stopped: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Println("actormesh: shutting down")

	stdCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sys.Shutdown(stdCtx); err != nil {
		log.Printf("actormesh: shutdown: %v", err)
	}
	if err := admin.Shutdown(); err != nil {
		log.Printf("actormesh: admin http shutdown: %v", err)
	}
}
