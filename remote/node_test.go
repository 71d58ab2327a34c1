package remote

import (
	"testing"
	"time"
)

func TestNewNode_RequiresNodeID(t *testing.T) {
	if _, err := NewNode(NodeConfig{}, nil); err == nil {
		t.Fatal("NewNode accepted an empty NodeID")
	}
}

func TestNode_HandleFrame_RoundTrip(t *testing.T) {
	n, err := NewNode(NodeConfig{NodeID: "node-a", JWTSecret: "s3cret"}, nil)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	var got Envelope
	n.Router.Handle("greet", func(e Envelope) (*Envelope, error) {
		got = e
		return nil, nil
	})

	frame, err := n.Encode(Envelope{MessageType: "greet", Payload: []byte("hi"), SenderNode: "node-b"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := n.HandleFrame(frame); err != nil {
		t.Fatalf("HandleFrame: %v", err)
	}
	if got.MessageType != "greet" || got.SenderNode != "node-b" {
		t.Fatalf("HandleFrame dispatched %+v", got)
	}
}

func TestNode_TokenRoundTrip(t *testing.T) {
	n, err := NewNode(NodeConfig{NodeID: "node-a", JWTSecret: "s3cret"}, nil)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	tok, err := n.IssueToken(time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	id, err := n.VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id != "node-a" {
		t.Fatalf("VerifyToken = %q, want %q", id, "node-a")
	}
}
