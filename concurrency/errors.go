package concurrency

import "errors"

var (
	// ErrPoolFull is returned by Submit when the decode queue is at
	// capacity; the caller should treat this as backpressure from the
	// remote transport, not as a dropped frame.
	ErrPoolFull = errors.New("concurrency: pool queue is full")

	// ErrPoolClosed is returned by Submit and SubmitWait when the pool
	// is not running: before Start, or after Stop has been called.
	ErrPoolClosed = errors.New("concurrency: pool is not running")
)
