package remote

import (
	"fmt"
	"time"

	"github.com/fluxorio/actormesh/actorlog"
	"github.com/fluxorio/actormesh/failfast"
)

// NodeConfig assembles the remote adapter's pieces for a single
// process: a node identity, the auth secret gating membership, a listen
// address, and seed addresses. NewNode reads only NodeID and JWTSecret;
// it starts with an empty Ring and does not use ListenAddr or
// SeedAddrs. It mirrors the shape of config.RemoteConfig so a
// SystemConfig loaded from disk maps onto it directly.
type NodeConfig struct {
	NodeID     string
	ListenAddr string
	SeedAddrs  []string
	JWTSecret  string
}

// Node bundles the remote-adapter collaborators a running process
// needs: its own identity, a type registry, a router, and the current
// membership ring. It does not open any listener itself; that is left
// to whichever transport (a Connection such as WSConnection, or a
// natscluster.Cluster) the caller wires in.
type Node struct {
	ID       string
	Registry *TypeRegistry
	Router   *Router
	Codec    Codec

	jwtSecret string
	ring      *Ring
}

// NewNode constructs a Node from cfg. log is used for the Router's
// drop/error logging; a nil log falls back to actorlog.NewDefault().
func NewNode(cfg NodeConfig, log actorlog.Logger) (*Node, error) {
	if cfg.NodeID == "" {
		return nil, fmt.Errorf("remote: NodeConfig.NodeID must not be empty")
	}

	registry := NewTypeRegistry()
	router := NewRouter(log)
	ring := NewRing(nil)
	// These are freshly constructed two lines up and can only be nil if
	// one of the constructors itself is broken, a programming error,
	// not a config problem, so it fails fast instead of surfacing later
	// as a nil-pointer panic deep inside Dispatch/Owner.
	failfast.NotNil(registry, "remote.NewTypeRegistry() result")
	failfast.NotNil(router, "remote.NewRouter() result")
	failfast.NotNil(ring, "remote.NewRing() result")

	return &Node{
		ID:        cfg.NodeID,
		Registry:  registry,
		Router:    router,
		Codec:     ProtoWireCodec{},
		jwtSecret: cfg.JWTSecret,
		ring:      ring,
	}, nil
}

// IssueToken signs a membership token asserting this node's identity.
func (n *Node) IssueToken(ttl time.Duration) (string, error) {
	return IssueNodeToken(n.jwtSecret, n.ID, ttl)
}

// VerifyToken validates a token presented by a joining peer.
func (n *Node) VerifyToken(token string) (string, error) {
	return VerifyNodeToken(n.jwtSecret, token)
}

// UpdateMembership replaces the current Ring with one built over
// members. Nothing here discovers members on its own: an external
// collaborator (gossip, a discovery service, a static seed list) is
// expected to call this as membership changes.
func (n *Node) UpdateMembership(members []NodeInfo) {
	n.ring = NewRing(members)
}

// Owner returns which known node should own targetActor, per the
// current Ring.
func (n *Node) Owner(targetActor string) (NodeInfo, bool) {
	return n.ring.Owner(targetActor)
}

// Encode encodes an Envelope ready to be length-prefixed and written
// to a Connection via WriteFrame.
func (n *Node) Encode(e Envelope) ([]byte, error) {
	return n.Codec.Encode(e)
}

// HandleFrame decodes a received frame as an Envelope and dispatches it
// through the Router, returning any reply Envelope to send back.
func (n *Node) HandleFrame(frame []byte) (*Envelope, error) {
	e, err := n.Codec.Decode(frame)
	if err != nil {
		return nil, fmt.Errorf("remote: decode frame: %w", err)
	}
	return n.Router.Dispatch(e), nil
}
