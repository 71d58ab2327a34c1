package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestRecordSpawnAndTermination(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordSpawn()
	m.RecordSpawn()
	if got := gaugeValue(t, m.ActorsAlive); got != 2 {
		t.Fatalf("ActorsAlive = %v, want 2", got)
	}
	if got := counterValue(t, m.ActorsSpawnedTotal); got != 2 {
		t.Fatalf("ActorsSpawnedTotal = %v, want 2", got)
	}

	m.RecordTermination("panicked", true)
	if got := gaugeValue(t, m.ActorsAlive); got != 1 {
		t.Fatalf("ActorsAlive after termination = %v, want 1", got)
	}
	if got := counterValue(t, m.ActorPanicsTotal); got != 1 {
		t.Fatalf("ActorPanicsTotal = %v, want 1", got)
	}
}

func TestRecordHandlerObservesDuration(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordHandler(5 * time.Millisecond)

	var out dto.Metric
	if err := m.MailboxHandlerSeconds.Write(&out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.GetHistogram().GetSampleCount() != 1 {
		t.Fatalf("sample count = %d, want 1", out.GetHistogram().GetSampleCount())
	}
}

func TestCustomCounterIsReusedByName(t *testing.T) {
	m := New(prometheus.NewRegistry())

	a := m.Counter("custom_total", "custom counter", "kind")
	b := m.Counter("custom_total", "custom counter", "kind")
	if a != b {
		t.Fatal("Counter() with the same name should return the same vector")
	}
}
