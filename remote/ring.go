package remote

import (
	"encoding/binary"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Ring answers "which node owns this actor name" with a deterministic,
// rendezvous-hash (highest-random-weight) pick over a set of NodeInfo.
// It is the static placement function a real membership layer would
// call; it implements none of the gossip or failure-detection policy
// that would keep the node set current. That stays an external
// collaborator.
type Ring struct {
	nodes []NodeInfo
}

// NewRing builds a Ring over nodes, keeping only those that are Up.
func NewRing(nodes []NodeInfo) *Ring {
	up := make([]NodeInfo, 0, len(nodes))
	for _, n := range nodes {
		if n.Status == NodeUp {
			up = append(up, n)
		}
	}
	sort.Slice(up, func(i, j int) bool { return up[i].ID < up[j].ID })
	return &Ring{nodes: up}
}

// Owner returns the NodeInfo with the highest blake2b-derived weight
// for key among the ring's Up nodes, and false if the ring is empty.
func (r *Ring) Owner(key string) (NodeInfo, bool) {
	if len(r.nodes) == 0 {
		return NodeInfo{}, false
	}
	var best NodeInfo
	var bestWeight uint64
	for i, n := range r.nodes {
		w := weight(n.ID, key)
		if i == 0 || w > bestWeight {
			best, bestWeight = n, w
		}
	}
	return best, true
}

// weight hashes nodeID and key together with blake2b-256 and reduces
// the digest to a uint64 comparison key; stable across processes, so
// every node computing Owner for the same key set agrees on the
// answer without coordination.
func weight(nodeID, key string) uint64 {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(nodeID))
	h.Write([]byte{0})
	h.Write([]byte(key))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
