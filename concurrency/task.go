package concurrency

import "context"

// Task is one inbound frame's decode-and-dispatch work, tagged with
// enough metadata for the pool to log and meter it without looking
// inside the frame.
type Task struct {
	Kind  string // frame kind, e.g. "envelope"; named in failure logs
	Bytes int    // wire size of the frame being processed
	Run   func(ctx context.Context) error
}
