package actor

import "sync"

// watcherList is a shared, lock-guarded list of type-erased notification
// sinks. Registration happens from any sender goroutine; notification
// happens once, from the dying actor's own event loop. The list is taken
// by move under the lock so no user code (a watcher's own handler) ever
// runs while the lock is held.
type watcherList struct {
	mu    sync.Mutex
	sinks []func(ID)
}

func newWatcherList() *watcherList {
	return &watcherList{}
}

// add appends a notification sink. Idempotence is not required: adding
// the same watcher twice means it receives two Terminated notifications.
func (w *watcherList) add(sink func(ID)) {
	w.mu.Lock()
	w.sinks = append(w.sinks, sink)
	w.mu.Unlock()
}

// notifyAll fires every registered sink exactly once with id, then
// clears the list. The termination sequence calls it, and Address.Watch
// calls it again when a sink is added after termination; because the
// list is taken by move, a sink never fires twice.
func (w *watcherList) notifyAll(id ID) {
	w.mu.Lock()
	sinks := w.sinks
	w.sinks = nil
	w.mu.Unlock()

	for _, sink := range sinks {
		sink(id)
	}
}
