package remote

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Codec converts an Envelope to and from its wire representation.
type Codec interface {
	Encode(e Envelope) ([]byte, error)
	Decode(b []byte) (Envelope, error)
}

// field numbers for the Envelope wire record. Fixed: renumbering
// breaks every peer on the wire.
const (
	fieldMessageType   = 1
	fieldPayload       = 2
	fieldCorrelationID = 3
	fieldSenderNode    = 4
	fieldTargetActor   = 5
	fieldIsResponse    = 6
)

// ProtoWireCodec is a hand-rolled, bit-exact protobuf encoder/decoder
// for Envelope built directly on protowire's low-level primitives,
// the way a minimal wire codec is written without invoking protoc.
type ProtoWireCodec struct{}

// Encode implements Codec.
func (ProtoWireCodec) Encode(e Envelope) ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldMessageType, protowire.BytesType)
	b = protowire.AppendString(b, e.MessageType)
	b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Payload)
	b = protowire.AppendTag(b, fieldCorrelationID, protowire.VarintType)
	b = protowire.AppendVarint(b, e.CorrelationID)
	b = protowire.AppendTag(b, fieldSenderNode, protowire.BytesType)
	b = protowire.AppendString(b, e.SenderNode)
	b = protowire.AppendTag(b, fieldTargetActor, protowire.BytesType)
	b = protowire.AppendString(b, e.TargetActor)
	b = protowire.AppendTag(b, fieldIsResponse, protowire.VarintType)
	var v uint64
	if e.IsResponse {
		v = 1
	}
	b = protowire.AppendVarint(b, v)
	return b, nil
}

// Decode implements Codec.
func (ProtoWireCodec) Decode(b []byte) (Envelope, error) {
	var e Envelope
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return e, fmt.Errorf("remote: malformed envelope tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldMessageType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed message_type: %w", protowire.ParseError(n))
			}
			e.MessageType = s
			b = b[n:]
		case fieldPayload:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed payload: %w", protowire.ParseError(n))
			}
			e.Payload = append([]byte(nil), v...)
			b = b[n:]
		case fieldCorrelationID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed correlation_id: %w", protowire.ParseError(n))
			}
			e.CorrelationID = v
			b = b[n:]
		case fieldSenderNode:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed sender_node: %w", protowire.ParseError(n))
			}
			e.SenderNode = s
			b = b[n:]
		case fieldTargetActor:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed target_actor: %w", protowire.ParseError(n))
			}
			e.TargetActor = s
			b = b[n:]
		case fieldIsResponse:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed is_response: %w", protowire.ParseError(n))
			}
			e.IsResponse = v != 0
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return e, fmt.Errorf("remote: malformed unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return e, nil
}
