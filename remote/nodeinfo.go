package remote

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// NodeStatus is a cluster membership node's last-known state. It is
// the data the membership placeholder carries; the gossip protocol
// that would keep it current is out of scope for this package.
type NodeStatus int32

const (
	NodeUp NodeStatus = iota
	NodeSuspect
	NodeDown
)

func (s NodeStatus) String() string {
	switch s {
	case NodeUp:
		return "up"
	case NodeSuspect:
		return "suspect"
	default:
		return "down"
	}
}

// NodeInfo is the gossip membership record: who a node is, where to
// reach it, and its last-known status.
type NodeInfo struct {
	ID     string
	Addr   string
	Status NodeStatus
}

const (
	nodeFieldID     = 1
	nodeFieldAddr   = 2
	nodeFieldStatus = 3
)

// EncodeNodeInfo encodes n with the same protowire primitives Envelope
// uses, field-for-field per the wire contract.
func EncodeNodeInfo(n NodeInfo) []byte {
	var b []byte
	b = protowire.AppendTag(b, nodeFieldID, protowire.BytesType)
	b = protowire.AppendString(b, n.ID)
	b = protowire.AppendTag(b, nodeFieldAddr, protowire.BytesType)
	b = protowire.AppendString(b, n.Addr)
	b = protowire.AppendTag(b, nodeFieldStatus, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.Status))
	return b
}

// DecodeNodeInfo decodes b into a NodeInfo. An unknown status code
// decodes to NodeDown, per the wire contract: a node this build does
// not understand is treated as unreachable rather than assumed healthy.
func DecodeNodeInfo(b []byte) (NodeInfo, error) {
	var n NodeInfo
	status := int64(-1)
	for len(b) > 0 {
		num, typ, n2 := protowire.ConsumeTag(b)
		if n2 < 0 {
			return n, fmt.Errorf("remote: malformed node_info tag: %w", protowire.ParseError(n2))
		}
		b = b[n2:]
		switch num {
		case nodeFieldID:
			s, n2 := protowire.ConsumeString(b)
			if n2 < 0 {
				return n, fmt.Errorf("remote: malformed node_info id: %w", protowire.ParseError(n2))
			}
			n.ID = s
			b = b[n2:]
		case nodeFieldAddr:
			s, n2 := protowire.ConsumeString(b)
			if n2 < 0 {
				return n, fmt.Errorf("remote: malformed node_info addr: %w", protowire.ParseError(n2))
			}
			n.Addr = s
			b = b[n2:]
		case nodeFieldStatus:
			v, n2 := protowire.ConsumeVarint(b)
			if n2 < 0 {
				return n, fmt.Errorf("remote: malformed node_info status: %w", protowire.ParseError(n2))
			}
			status = int64(v)
			b = b[n2:]
		default:
			n2 := protowire.ConsumeFieldValue(num, typ, b)
			if n2 < 0 {
				return n, fmt.Errorf("remote: malformed node_info unknown field %d: %w", num, protowire.ParseError(n2))
			}
			b = b[n2:]
		}
	}
	switch status {
	case int64(NodeUp):
		n.Status = NodeUp
	case int64(NodeSuspect):
		n.Status = NodeSuspect
	default:
		n.Status = NodeDown
	}
	return n, nil
}
