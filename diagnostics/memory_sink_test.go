package diagnostics

import (
	"testing"
	"time"

	"github.com/fluxorio/actormesh/actor"
)

func TestMemorySink_DropsOldestBeyondCapacity(t *testing.T) {
	sink := NewMemorySink(2)

	for i := 1; i <= 3; i++ {
		if err := sink.Record(actor.DiagnosticEvent{ActorID: actor.ID(i), At: time.Now()}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	events := sink.Events()
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].ActorID != 2 || events[1].ActorID != 3 {
		t.Fatalf("events = %+v, want ids [2 3]", events)
	}
}
