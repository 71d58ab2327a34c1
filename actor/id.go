package actor

import "sync/atomic"

// ID is a process-unique, monotonic, non-zero identifier assigned at
// spawn time. Two distinct spawns always yield distinct ids; ids are
// never reused within a process lifetime.
type ID uint64

// idCounter seeds at 1 so the zero value of ID can mean "unset".
var idCounter uint64

func nextID() ID {
	return ID(atomic.AddUint64(&idCounter, 1))
}
