package remote

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// S7: envelope framing round-trip.
func TestProtoWireCodec_RoundTrip(t *testing.T) {
	e := Envelope{
		MessageType:   "test::Ping",
		Payload:       []byte("Hello, World!"),
		CorrelationID: 42,
		SenderNode:    "node-a",
		TargetActor:   "greeter",
		IsResponse:    false,
	}

	codec := ProtoWireCodec{}
	b, err := codec.Encode(e)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := codec.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, e) {
		t.Fatalf("decode(encode(e)) = %+v, want %+v", got, e)
	}
}

func TestProtoWireCodec_RoundTrip_IsResponseTrue(t *testing.T) {
	e := Envelope{MessageType: "test::Pong", CorrelationID: 7, IsResponse: true}
	codec := ProtoWireCodec{}
	b, err := codec.Encode(e)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := codec.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.IsResponse {
		t.Fatal("IsResponse did not round-trip as true")
	}
}

func TestNodeInfo_RoundTrip(t *testing.T) {
	n := NodeInfo{ID: "node-1", Addr: "10.0.0.1:7000", Status: NodeSuspect}
	b := EncodeNodeInfo(n)
	got, err := DecodeNodeInfo(b)
	if err != nil {
		t.Fatalf("DecodeNodeInfo: %v", err)
	}
	if got != n {
		t.Fatalf("decode(encode(n)) = %+v, want %+v", got, n)
	}
}

func TestNodeInfo_UnknownStatusDecodesToDown(t *testing.T) {
	// Simulate a peer running a newer build that sent a status code
	// this version of NodeStatus does not know about.
	var b []byte
	b = protowire.AppendTag(b, nodeFieldID, protowire.BytesType)
	b = protowire.AppendString(b, "x")
	b = protowire.AppendTag(b, nodeFieldStatus, protowire.VarintType)
	b = protowire.AppendVarint(b, 99)

	got, err := DecodeNodeInfo(b)
	if err != nil {
		t.Fatalf("DecodeNodeInfo: %v", err)
	}
	if got.Status != NodeDown {
		t.Fatalf("unknown status code decoded to %v, want NodeDown", got.Status)
	}
}
