package remote

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fluxorio/actormesh/concurrency"
	"github.com/fluxorio/actormesh/observability/metrics"
)

// poolMetrics reports decode-pool telemetry into the process metrics.
type poolMetrics struct{}

func (poolMetrics) QueueDepth(depth int) { metrics.GetMetrics().RecordDecodeQueueDepth(depth) }
func (poolMetrics) Rejected()            { metrics.GetMetrics().RecordDecodeRejected() }

// NewDecodePool builds the concurrency.Pool Serve expects, with its
// queue-depth and rejection telemetry wired into the process metrics
// unless cfg already names an Observer.
func NewDecodePool(ctx context.Context, cfg concurrency.Config) *concurrency.Pool {
	if cfg.Observer == nil {
		cfg.Observer = poolMetrics{}
	}
	return concurrency.NewPool(ctx, cfg)
}

// Serve reads frames off conn until it is closed or ctx is cancelled,
// submitting each frame's decode-and-dispatch work to pool so a burst
// of inbound frames cannot spawn one goroutine per frame. The submit
// blocks when the pool's queue is full, so backpressure reaches the
// connection's read loop instead of dropping frames. pool must already
// be Start()ed; Serve does not own its lifecycle. Any reply envelope a
// handler returns is encoded and written back over conn from the same
// pool worker that decoded the request.
func (n *Node) Serve(ctx context.Context, conn Connection, pool *concurrency.Pool) error {
	for {
		frame, err := conn.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("remote: recv: %w", err)
		}

		task := concurrency.Task{
			Kind:  "envelope",
			Bytes: len(frame),
			Run: func(taskCtx context.Context) error {
				reply, err := n.HandleFrame(frame)
				if err != nil {
					return err
				}
				if reply == nil {
					return nil
				}
				out, err := n.Encode(*reply)
				if err != nil {
					return fmt.Errorf("remote: encode reply: %w", err)
				}
				return conn.Send(out)
			},
		}

		if err := pool.SubmitWait(ctx, task); err != nil {
			return fmt.Errorf("remote: submit dispatch task: %w", err)
		}
	}
}
