package natscluster

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/fluxorio/actormesh/remote"
)

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("freePort: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestCluster_PublishSubscribeRoundTrip stands up EmbeddedServer on a
// free loopback port and drives a real Cluster.Publish/Subscribe round
// trip against it, no external nats-server required.
func TestCluster_PublishSubscribeRoundTrip(t *testing.T) {
	port := freePort(t)
	srv, err := EmbeddedServer(port)
	if err != nil {
		t.Fatalf("EmbeddedServer: %v", err)
	}
	defer srv.Shutdown()

	cluster, err := Connect(Config{
		URL:    fmt.Sprintf("nats://127.0.0.1:%d", port),
		Prefix: "test",
		Name:   "natscluster-test",
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer cluster.Close()

	received := make(chan remote.Envelope, 1)
	sub, err := cluster.Subscribe("greeter", func(e remote.Envelope) {
		received <- e
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	// Give the server a moment to register the subscription before the
	// publish below reaches it.
	time.Sleep(50 * time.Millisecond)

	if err := cluster.Publish(remote.Envelope{
		MessageType: "greet",
		Payload:     []byte("hello"),
		TargetActor: "greeter",
		SenderNode:  "node-a",
	}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case e := <-received:
		if e.MessageType != "greet" || string(e.Payload) != "hello" || e.SenderNode != "node-a" {
			t.Fatalf("received envelope = %+v, want greet/hello/node-a", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive the published envelope within 2s")
	}
}

// TestCluster_SubscribeIgnoresUndecodableFrames exercises the
// decode-failure policy documented on Subscribe: a frame that does not
// decode as an Envelope is dropped silently rather than reaching
// handler or surfacing an error anywhere a caller could observe.
func TestCluster_SubscribeIgnoresUndecodableFrames(t *testing.T) {
	port := freePort(t)
	srv, err := EmbeddedServer(port)
	if err != nil {
		t.Fatalf("EmbeddedServer: %v", err)
	}
	defer srv.Shutdown()

	cluster, err := Connect(Config{
		URL:    fmt.Sprintf("nats://127.0.0.1:%d", port),
		Prefix: "test",
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer cluster.Close()

	received := make(chan remote.Envelope, 1)
	sub, err := cluster.Subscribe("greeter", func(e remote.Envelope) {
		received <- e
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	time.Sleep(50 * time.Millisecond)

	if err := cluster.nc.Publish(cluster.subject("greeter"), []byte("not a valid frame")); err != nil {
		t.Fatalf("raw Publish: %v", err)
	}

	select {
	case e := <-received:
		t.Fatalf("handler invoked for an undecodable frame: %+v", e)
	case <-time.After(200 * time.Millisecond):
	}
}
