package remote

// Connection is the abstraction the rest of this package sends and
// receives framed Envelope bytes through. It says nothing about
// transport: wsconn.go implements it over a WebSocket. natscluster does
// not implement Connection; it moves the same encoded Envelope bytes
// over NATS subjects through its own Publish/Subscribe API.
type Connection interface {
	Send(frame []byte) error
	Recv() ([]byte, error)
	Close() error
}
