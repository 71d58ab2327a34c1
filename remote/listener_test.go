package remote

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/fluxorio/actormesh/concurrency"
)

// chanConn is an in-memory Connection for exercising Serve without a real
// socket: Recv drains in, Send appends to out.
type chanConn struct {
	in  chan []byte
	mu  sync.Mutex
	out [][]byte
}

func newChanConn() *chanConn {
	return &chanConn{in: make(chan []byte, 8)}
}

func (c *chanConn) Recv() ([]byte, error) {
	frame, ok := <-c.in
	if !ok {
		return nil, io.EOF
	}
	return frame, nil
}

func (c *chanConn) Send(frame []byte) error {
	c.mu.Lock()
	c.out = append(c.out, frame)
	c.mu.Unlock()
	return nil
}

func (c *chanConn) Close() error {
	close(c.in)
	return nil
}

func (c *chanConn) sent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.out)
}

func TestServe_DispatchesFramesThroughPool(t *testing.T) {
	node, err := NewNode(NodeConfig{NodeID: "node-a"}, nil)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	var handled int
	var mu sync.Mutex
	node.Router.Handle("ping", func(e Envelope) (*Envelope, error) {
		mu.Lock()
		handled++
		mu.Unlock()
		return &Envelope{MessageType: "pong", CorrelationID: e.CorrelationID, IsResponse: true}, nil
	})

	conn := newChanConn()
	frame, err := node.Encode(Envelope{MessageType: "ping", CorrelationID: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	conn.in <- frame

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := NewDecodePool(ctx, concurrency.Config{Workers: 2, QueueSize: 8})
	if err := pool.Start(); err != nil {
		t.Fatalf("pool.Start: %v", err)
	}
	defer pool.Stop(context.Background())

	serveErr := make(chan error, 1)
	go func() { serveErr <- node.Serve(ctx, conn, pool) }()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		got := handled
		mu.Unlock()
		if got == 1 && conn.sent() == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	got := handled
	mu.Unlock()
	if got != 1 {
		t.Fatalf("handled = %d, want 1", got)
	}
	if conn.sent() != 1 {
		t.Fatalf("sent = %d, want 1", conn.sent())
	}

	conn.Close()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after conn close")
	}
}
