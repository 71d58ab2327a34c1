package remote

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestWSConnection_RoundTrip upgrades a real httptest.Server connection
// and dials it back with DialWSConnection, proving Send/Recv carry
// ProtoWireCodec-encoded Envelope bytes intact over an actual WebSocket
// stream rather than the in-memory chanConn listener_test.go uses for
// Serve.
func TestWSConnection_RoundTrip(t *testing.T) {
	codec := ProtoWireCodec{}
	serverRecv := make(chan struct{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := UpgradeWSConnection(w, r)
		if err != nil {
			t.Errorf("UpgradeWSConnection: %v", err)
			return
		}
		defer conn.Close()

		frame, err := conn.Recv()
		if err != nil {
			t.Errorf("server Recv: %v", err)
			return
		}
		e, err := codec.Decode(frame)
		if err != nil {
			t.Errorf("server Decode: %v", err)
			return
		}
		serverRecv <- struct{}{}

		reply, err := codec.Encode(Envelope{
			MessageType:   "pong",
			CorrelationID: e.CorrelationID,
			IsResponse:    true,
		})
		if err != nil {
			t.Errorf("server Encode: %v", err)
			return
		}
		if err := conn.Send(reply); err != nil {
			t.Errorf("server Send: %v", err)
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	client, err := DialWSConnection(wsURL)
	if err != nil {
		t.Fatalf("DialWSConnection: %v", err)
	}
	defer client.Close()

	frame, err := codec.Encode(Envelope{MessageType: "ping", CorrelationID: 7})
	if err != nil {
		t.Fatalf("client Encode: %v", err)
	}
	if err := client.Send(frame); err != nil {
		t.Fatalf("client Send: %v", err)
	}

	select {
	case <-serverRecv:
	case <-time.After(time.Second):
		t.Fatal("server did not receive the frame within 1s")
	}

	replyFrame, err := client.Recv()
	if err != nil {
		t.Fatalf("client Recv: %v", err)
	}
	reply, err := codec.Decode(replyFrame)
	if err != nil {
		t.Fatalf("client Decode: %v", err)
	}
	if reply.MessageType != "pong" || reply.CorrelationID != 7 || !reply.IsResponse {
		t.Fatalf("reply = %+v, want pong/7/IsResponse=true", reply)
	}
}
