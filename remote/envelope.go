// Package remote specifies the wire-level contract a remote transport
// plugs into: a length-prefixed frame format, a bit-exact protobuf
// encoding of an Envelope, a process-wide type-id registry, and a
// router that dispatches decoded envelopes to local handlers. The
// gossip/failure-detection policy a real cluster needs is explicitly
// out of scope here: Ring only answers "which node owns this name",
// it does not run any membership protocol.
package remote

// Envelope is the wire record exchanged between nodes. Field numbers
// and types are fixed; changing them breaks interoperability with any
// peer speaking the same contract.
type Envelope struct {
	MessageType   string // stable type tag supplied by the sender
	Payload       []byte // serialized message body
	CorrelationID uint64 // sender-chosen id matching a response to its request
	SenderNode    string // originating node id
	TargetActor   string // destination actor name on the target node
	IsResponse    bool   // distinguishes a reply from a request
}

// DecodeFunc unmarshals a message's payload bytes into the registered
// Go value and reboxes it as an opaque value the router can dispatch.
type DecodeFunc func(payload []byte) (interface{}, error)

// EnvelopeHandler processes one decoded Envelope, either as a
// fire-and-forget delivery or by producing a response Envelope to send
// back to SenderNode.
type EnvelopeHandler func(e Envelope) (response *Envelope, err error)
