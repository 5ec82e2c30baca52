package devs

import (
	"context"
	"fmt"
	"time"

	"github.com/dvicino/pdevs/devs/emit"
	"github.com/dvicino/pdevs/devs/store"
)

// Sink receives every message the root coupled model emits through its
// external output coupling, tagged with the simulated time it fired at.
type Sink[T Time[T], M any] func(t T, msg M)

// Runner drives a coordinator tree built from a root Coupled model,
// repeatedly finding the next imminent time, collecting outputs, handing
// them to the sink, and advancing. Grounded on spec.md §4.F/§6's Run API
// ("runner from root coupled + initial time + optional sink").
type Runner[T Time[T], M any] struct {
	root  coordinatorNode[T, M]
	t     T
	sink  Sink[T, M]
	rt    *runtimeContext[T, M]
	store store.TraceStore
}

// NewRunner validates root, builds its coordinator tree, and initializes
// it at t0. sink may be nil, in which case outputs are discarded after
// any configured TraceStore has recorded them.
func NewRunner[T Time[T], M any](root *Coupled[T, M], t0 T, sink Sink[T, M], opts ...Option[T, M]) (*Runner[T, M], error) {
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coupled model: %w", err)
	}

	cfg := defaultConfig[T, M]()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	runID := cfg.runID
	if runID == "" {
		runID = store.NewRunID()
	}

	rt := &runtimeContext[T, M]{
		emitter:   cfg.emitter,
		collector: cfg.metrics,
		runID:     runID,
	}

	node := buildNode[T, M](root.ID, root, cfg.scheduler, rt)
	node.Init(t0)

	rt.emitter.Emit(emit.Event{RunID: runID, Step: int(rt.nextSeq()), NodeID: root.ID, Msg: "run_init"})

	if sink == nil {
		sink = func(T, M) {}
	}

	return &Runner[T, M]{root: node, t: t0, sink: sink, rt: rt, store: cfg.traceStore}, nil
}

// Time reports the current simulated time (the time of the last
// completed step, or t0 before the first Step call).
func (r *Runner[T, M]) Time() T { return r.t }

// Step advances the simulation to the root's next imminent time,
// delivers every externally-visible output to the sink (and, if
// configured, the trace store), and returns the time and outputs.
// Returns ok=false with a nil error if the root has passivated (tNext is
// Infinity); a non-nil error means the configured TraceStore failed to
// persist an output, which is an ambient-stack fault, not one of
// spec.md §7's engine-contract violations, so it is returned rather than
// panicked.
func (r *Runner[T, M]) Step(ctx context.Context) (t T, outputs Bag[M], ok bool, err error) {
	next := r.root.TNext()
	if isInfinite(next) {
		return next, nil, false, nil
	}

	out := r.root.CollectOutputs(next)
	for _, msg := range out {
		r.sink(next, msg)
		if r.store != nil {
			if appendErr := r.store.Append(ctx, r.rt.runID, fmt.Sprint(next), fmt.Sprint(msg)); appendErr != nil {
				return next, out, true, fmt.Errorf("trace store append: %w", appendErr)
			}
		}
	}
	start := time.Now()
	r.root.AdvanceSimulation(next, nil)
	if r.rt.collector != nil {
		r.rt.collector.RecordStepLatency(time.Since(start))
	}
	r.t = next
	return next, out, true, nil
}

// RunUntil steps the simulation while its next imminent time is strictly
// less than tEnd, and returns once no such step remains (either
// passivated or the next event would land at or after tEnd).
func (r *Runner[T, M]) RunUntil(ctx context.Context, tEnd T) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		next := r.root.TNext()
		if isInfinite(next) || !next.Less(tEnd) {
			return nil
		}
		_, _, ok, err := r.Step(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// RunUntilPassivate steps the simulation until the root's next scheduled
// time is Infinity — spec.md §7's "exhaustion/passivation" terminal
// state, not an error.
func (r *Runner[T, M]) RunUntilPassivate(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, _, ok, err := r.Step(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
