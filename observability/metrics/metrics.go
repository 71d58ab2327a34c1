// Package metrics exposes actor-runtime and remote-transport counters,
// gauges, and histograms to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DefaultRegistry is the registry metrics register against when no
	// explicit Registerer is supplied to New.
	DefaultRegistry = prometheus.NewRegistry()

	// DefaultRegisterer labels every metric under this registry with a
	// fixed service name so a node's metrics can be told apart from a
	// neighbour's on a shared scrape target.
	DefaultRegisterer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "actormesh"}, DefaultRegistry)

	metricsOnce sync.Once
	metrics     *Metrics
)

// Metrics holds every metric this runtime reports.
type Metrics struct {
	// Actor lifecycle
	ActorsSpawnedTotal    prometheus.Counter
	ActorsTerminatedTotal *prometheus.CounterVec // label: cause
	ActorsAlive           prometheus.Gauge
	ActorPanicsTotal      prometheus.Counter

	// Mailbox
	MailboxEnqueueTotal   *prometheus.CounterVec // label: result (ok, full, closed)
	MailboxHandlerSeconds prometheus.Histogram

	// Remote transport
	RemoteFramesReceivedTotal  *prometheus.CounterVec // label: kind
	RemoteFramesSentTotal      *prometheus.CounterVec // label: kind
	RemoteDecodeQueueDepth     prometheus.Gauge
	RemoteDecodeRejectedTotal  prometheus.Counter
	RemoteConnectedPeers       prometheus.Gauge
	RemoteRoundTripSeconds     *prometheus.HistogramVec // label: kind

	customMu         sync.RWMutex
	customCounters   map[string]*prometheus.CounterVec
	customGauges     map[string]*prometheus.GaugeVec
	customHistograms map[string]*prometheus.HistogramVec

	registerer prometheus.Registerer
}

// GetMetrics returns the process-wide Metrics instance, registered
// against DefaultRegisterer on first use.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = New(DefaultRegisterer)
	})
	return metrics
}

// New creates a Metrics collection registered against registerer. A
// nil registerer falls back to DefaultRegisterer; tests that want an
// isolated registry should pass prometheus.NewRegistry() directly.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = DefaultRegisterer
	}

	return &Metrics{
		ActorsSpawnedTotal: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Name: "actormesh_actors_spawned_total",
			Help: "Total number of actors spawned.",
		}),
		ActorsTerminatedTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "actormesh_actors_terminated_total",
				Help: "Total number of actors terminated, by cause.",
			},
			[]string{"cause"},
		),
		ActorsAlive: promauto.With(registerer).NewGauge(prometheus.GaugeOpts{
			Name: "actormesh_actors_alive",
			Help: "Number of actors currently alive.",
		}),
		ActorPanicsTotal: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Name: "actormesh_actor_panics_total",
			Help: "Total number of actor handler panics recovered.",
		}),
		MailboxEnqueueTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "actormesh_mailbox_enqueue_total",
				Help: "Total mailbox enqueue attempts, by result.",
			},
			[]string{"result"},
		),
		MailboxHandlerSeconds: promauto.With(registerer).NewHistogram(prometheus.HistogramOpts{
			Name:    "actormesh_mailbox_handler_duration_seconds",
			Help:    "Wall time spent inside a single mailbox handler invocation.",
			Buckets: prometheus.DefBuckets,
		}),
		RemoteFramesReceivedTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "actormesh_remote_frames_received_total",
				Help: "Total remote frames received, by kind.",
			},
			[]string{"kind"},
		),
		RemoteFramesSentTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "actormesh_remote_frames_sent_total",
				Help: "Total remote frames sent, by kind.",
			},
			[]string{"kind"},
		),
		RemoteDecodeQueueDepth: promauto.With(registerer).NewGauge(prometheus.GaugeOpts{
			Name: "actormesh_remote_decode_queue_depth",
			Help: "Current depth of the inbound frame decode/dispatch queue.",
		}),
		RemoteDecodeRejectedTotal: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Name: "actormesh_remote_decode_rejected_total",
			Help: "Total inbound frames rejected because the decode queue was full.",
		}),
		RemoteConnectedPeers: promauto.With(registerer).NewGauge(prometheus.GaugeOpts{
			Name: "actormesh_remote_connected_peers",
			Help: "Number of remote nodes currently connected.",
		}),
		RemoteRoundTripSeconds: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "actormesh_remote_round_trip_seconds",
				Help:    "Round-trip time for remote request/response frames.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		customCounters:   make(map[string]*prometheus.CounterVec),
		customGauges:     make(map[string]*prometheus.GaugeVec),
		customHistograms: make(map[string]*prometheus.HistogramVec),
		registerer:       registerer,
	}
}

// RecordSpawn increments ActorsSpawnedTotal and ActorsAlive.
func (m *Metrics) RecordSpawn() {
	m.ActorsSpawnedTotal.Inc()
	m.ActorsAlive.Inc()
}

// RecordTermination decrements ActorsAlive and increments the
// per-cause termination counter, plus the panic counter if cause
// indicates a panic.
func (m *Metrics) RecordTermination(cause string, panicked bool) {
	m.ActorsAlive.Dec()
	m.ActorsTerminatedTotal.WithLabelValues(cause).Inc()
	if panicked {
		m.ActorPanicsTotal.Inc()
	}
}

// RecordEnqueue records a mailbox enqueue attempt outcome: "ok",
// "full", or "closed".
func (m *Metrics) RecordEnqueue(result string) {
	m.MailboxEnqueueTotal.WithLabelValues(result).Inc()
}

// RecordHandler observes how long a single handler invocation took.
func (m *Metrics) RecordHandler(d time.Duration) {
	m.MailboxHandlerSeconds.Observe(d.Seconds())
}

// RecordRemoteRoundTrip observes a remote call's latency, by frame kind.
func (m *Metrics) RecordRemoteRoundTrip(kind string, d time.Duration) {
	m.RemoteRoundTripSeconds.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordDecodeQueueDepth sets the inbound decode queue depth gauge.
func (m *Metrics) RecordDecodeQueueDepth(depth int) {
	m.RemoteDecodeQueueDepth.Set(float64(depth))
}

// RecordDecodeRejected counts a frame rejected by a full decode queue.
func (m *Metrics) RecordDecodeRejected() {
	m.RemoteDecodeRejectedTotal.Inc()
}

// RecordFrameSent increments the sent-frame counter for the given kind
// ("ws", "nats", ...).
func (m *Metrics) RecordFrameSent(kind string) {
	m.RemoteFramesSentTotal.WithLabelValues(kind).Inc()
}

// RecordFrameReceived increments the received-frame counter for the
// given kind.
func (m *Metrics) RecordFrameReceived(kind string) {
	m.RemoteFramesReceivedTotal.WithLabelValues(kind).Inc()
}

// Counter returns (creating if necessary) a custom counter vector.
func (m *Metrics) Counter(name, help string, labels ...string) *prometheus.CounterVec {
	m.customMu.RLock()
	if c, ok := m.customCounters[name]; ok {
		m.customMu.RUnlock()
		return c
	}
	m.customMu.RUnlock()

	m.customMu.Lock()
	defer m.customMu.Unlock()
	if c, ok := m.customCounters[name]; ok {
		return c
	}
	c := promauto.With(m.registerer).NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	m.customCounters[name] = c
	return c
}

// Gauge returns (creating if necessary) a custom gauge vector.
func (m *Metrics) Gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	m.customMu.RLock()
	if g, ok := m.customGauges[name]; ok {
		m.customMu.RUnlock()
		return g
	}
	m.customMu.RUnlock()

	m.customMu.Lock()
	defer m.customMu.Unlock()
	if g, ok := m.customGauges[name]; ok {
		return g
	}
	g := promauto.With(m.registerer).NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	m.customGauges[name] = g
	return g
}
