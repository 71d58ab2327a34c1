package actor

import "sync"

// childHandle is the type-erased view a parent keeps of a spawned child:
// enough to stop it and to ask whether it is still alive, without the
// parent needing to know the child's concrete actor type.
type childHandle struct {
	stop  func()
	alive func() bool
}

// childList is owned by a single Context; it is never shared across
// actors, so it needs no lock-free or notify-by-move discipline the way
// watcherList does, only protection against the rare case where a
// handler spawns children concurrently with the termination sequence
// reading the list (both run on the same goroutine in practice, but the
// lock costs nothing and removes that assumption).
type childList struct {
	mu       sync.Mutex
	children []childHandle
}

func newChildList() *childList {
	return &childList{}
}

func (c *childList) add(h childHandle) {
	c.mu.Lock()
	c.children = append(c.children, h)
	c.mu.Unlock()
}

// aliveCount reports how many tracked children currently report
// themselves alive. It is a point-in-time snapshot for diagnostics.
func (c *childList) aliveCount() int {
	c.mu.Lock()
	children := c.children
	c.mu.Unlock()

	n := 0
	for _, h := range children {
		if h.alive() {
			n++
		}
	}
	return n
}

// stopAll fires every child's stop-signal. It does not wait for children
// to finish terminating; the parent's own termination sequence runs
// concurrently with each child's.
func (c *childList) stopAll() {
	c.mu.Lock()
	children := c.children
	c.mu.Unlock()

	for _, h := range children {
		h.stop()
	}
}
