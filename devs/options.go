package devs

import (
	"github.com/dvicino/pdevs/devs/emit"
	"github.com/dvicino/pdevs/devs/metrics"
	"github.com/dvicino/pdevs/devs/store"
)

// Option configures a Runner at construction time.
//
// Functional options provide a clean, extensible construction API:
//   - Chainable: runner, err := devs.NewRunner(root, t0, sink, devs.WithEmitter[T, M](e), devs.WithScheduler[T, M](devs.SchedulerPoll)).
//   - Self-documenting: option names describe their purpose directly.
//   - Optional: a caller only specifies what differs from the defaults.
//
// A functional-options pattern (Option/runnerConfig), narrowed to the
// four knobs a simulation run actually has — there is no analogue here
// for MaxConcurrentNodes, QueueDepth, or ReplayMode, since a PDEVS run is
// single-threaded and has no rollback (spec.md §5, §9).
type Option[T Time[T], M any] func(*runnerConfig[T, M]) error

// runnerConfig collects options before NewRunner applies them.
type runnerConfig[T Time[T], M any] struct {
	scheduler  SchedulerKind
	emitter    emit.Emitter
	metrics    *metrics.Collector
	traceStore store.TraceStore
	runID      string
}

// SchedulerKind selects which Scheduler implementation a Runner's
// coordinator tree uses to pick the next imminent child.
type SchedulerKind int

const (
	// SchedulerHeap uses a priority queue (devs.heapScheduler). Preferred
	// for coupled models with large fan-out, where a linear scan over
	// every child on every step would dominate.
	SchedulerHeap SchedulerKind = iota

	// SchedulerPoll uses a linear scan (devs.pollScheduler). Preferred
	// for small coupled models, where heap bookkeeping costs more than
	// the scan it would save.
	SchedulerPoll
)

func defaultConfig[T Time[T], M any]() runnerConfig[T, M] {
	return runnerConfig[T, M]{
		scheduler: SchedulerHeap,
		emitter:   emit.NewNullEmitter(),
	}
}

// WithScheduler selects the scheduling strategy used by every composite
// node in the coordinator tree. Default: SchedulerHeap.
func WithScheduler[T Time[T], M any](kind SchedulerKind) Option[T, M] {
	return func(cfg *runnerConfig[T, M]) error {
		cfg.scheduler = kind
		return nil
	}
}

// WithEmitter attaches an observability sink that receives a run_init
// event, one transition event per Internal/External/Confluent call, and
// a passivate event when a leaf's tNext becomes Infinity. Default:
// emit.NewNullEmitter() (discards everything).
func WithEmitter[T Time[T], M any](e emit.Emitter) Option[T, M] {
	return func(cfg *runnerConfig[T, M]) error {
		cfg.emitter = e
		return nil
	}
}

// WithMetrics attaches a Prometheus-backed metrics.Collector that records
// imminent-set size, scheduler queue depth, transition counts by kind,
// and per-step latency. Default: nil (metrics disabled).
func WithMetrics[T Time[T], M any](c *metrics.Collector) Option[T, M] {
	return func(cfg *runnerConfig[T, M]) error {
		cfg.metrics = c
		return nil
	}
}

// WithTraceStore attaches a persistence backend that receives every
// output the root coupled model produces, tagged with runID, for later
// replay through models.EventStream. Default: nil (no persistence).
func WithTraceStore[T Time[T], M any](s store.TraceStore, runID string) Option[T, M] {
	return func(cfg *runnerConfig[T, M]) error {
		cfg.traceStore = s
		cfg.runID = runID
		return nil
	}
}
