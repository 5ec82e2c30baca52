// Package metrics exposes Prometheus instrumentation for a running PDEVS
// coordinator tree: how large the imminent set is each step, how deep the
// scheduler's backlog runs, how many transitions of each kind have fired,
// and how long a step takes end to end.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransitionKind labels which of the three PDEVS transition functions
// fired, for the TransitionsTotal counter.
type TransitionKind string

const (
	Internal  TransitionKind = "internal"
	External  TransitionKind = "external"
	Confluent TransitionKind = "confluent"
)

// Collector holds every metric a Runner reports, namespaced "pdevs_".
// Built the standard promauto-factory way (gauges/histogram/counter
// registered through promauto.With), narrowed to the four numbers a
// simulation step actually produces. Dropped entirely: anything shaped
// like retries_total or merge_conflicts_total (no retry or concurrent-merge
// concept exists in a single-threaded PDEVS run) and backpressure_events_total
// (no bounded queue to saturate — see scheduler.go's doc comment).
type Collector struct {
	imminentSetSize prometheus.Gauge
	queueDepth      prometheus.Gauge
	transitions     *prometheus.CounterVec
	stepLatency     prometheus.Histogram

	mu sync.RWMutex
	on bool
}

// NewCollector registers every metric against registry (use
// prometheus.DefaultRegisterer for the global registry, or a fresh
// prometheus.NewRegistry() for test isolation).
func NewCollector(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Collector{
		on: true,
		imminentSetSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pdevs",
			Name:      "imminent_set_size",
			Help:      "Number of children selected for transition in the current step",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pdevs",
			Name:      "queue_depth",
			Help:      "Length of the scheduler's queue (heap entries, or eligible children when polling)",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdevs",
			Name:      "transitions_total",
			Help:      "Cumulative count of transitions fired, by kind",
		}, []string{"kind"}),
		stepLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pdevs",
			Name:      "step_latency_seconds",
			Help:      "Wall-clock duration of one advanceSimulation call",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// SetImminentSetSize records how many children were imminent this step.
func (c *Collector) SetImminentSetSize(n int) {
	if !c.enabled() {
		return
	}
	c.imminentSetSize.Set(float64(n))
}

// SetQueueDepth records the scheduler's current queue length: the heap
// length of a heap-backed scheduler, or the number of eligible children of
// a polling one.
func (c *Collector) SetQueueDepth(n int) {
	if !c.enabled() {
		return
	}
	c.queueDepth.Set(float64(n))
}

// RecordTransition increments the counter for the given transition kind.
func (c *Collector) RecordTransition(kind TransitionKind) {
	if !c.enabled() {
		return
	}
	c.transitions.WithLabelValues(string(kind)).Inc()
}

// RecordStepLatency observes the duration of one advanceSimulation call.
func (c *Collector) RecordStepLatency(d time.Duration) {
	if !c.enabled() {
		return
	}
	c.stepLatency.Observe(d.Seconds())
}

func (c *Collector) enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.on
}

// Disable stops metric recording without unregistering collectors.
func (c *Collector) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.on = false
}

// Enable resumes metric recording after Disable.
func (c *Collector) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.on = true
}
