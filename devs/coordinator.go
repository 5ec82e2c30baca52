package devs

import (
	"github.com/dvicino/pdevs/devs/emit"
	"github.com/dvicino/pdevs/devs/metrics"
)

// coordinatorNode is the runtime counterpart of submodel: every Atomic
// leaf gets a simulator (leafNode), every Coupled composite gets a
// coordinator (compositeNode), mirroring the classical DEVS abstract
// simulator protocol of spec.md §3.5/§4.D: Init, CollectOutputs,
// AdvanceSimulation, called by a parent in that order at each step.
type coordinatorNode[T Time[T], M any] interface {
	TNext() T
	Init(t T)
	CollectOutputs(t T) Bag[M]
	AdvanceSimulation(t T, x Bag[M])
}

// runtimeContext carries the ambient stack (observability, metrics, run
// identity) down through the coordinator tree without threading it
// through every method signature. Single-threaded by construction
// (spec.md §5), so its sequence counter needs no synchronization.
type runtimeContext[T Time[T], M any] struct {
	emitter   emit.Emitter
	collector *metrics.Collector
	runID     string
	seq       int64
}

func (rt *runtimeContext[T, M]) nextSeq() int64 {
	rt.seq++
	return rt.seq
}

func timeEqual[T Time[T]](a, b T) bool {
	return !a.Less(b) && !b.Less(a)
}

func isInfinite[T Time[T]](t T) bool {
	inf, ok := any(t).(InfiniteTime[T])
	if !ok {
		return false
	}
	return timeEqual(t, inf.Infinity())
}

// buildNode wraps a submodel value (an Atomic leaf or a nested Coupled)
// into its runtime coordinatorNode, recursively for composites.
func buildNode[T Time[T], M any](id string, m submodel, schedKind SchedulerKind, rt *runtimeContext[T, M]) coordinatorNode[T, M] {
	switch v := m.(type) {
	case atomicModel[T, M]:
		return &leafNode[T, M]{id: id, atomic: v.Atomic, rt: rt}
	case *Coupled[T, M]:
		return buildComposite[T, M](id, v, schedKind, rt)
	default:
		panic(PanicValue{NodeID: id, Err: ErrDomainViolation})
	}
}

// leafNode is the simulator for an Atomic model: the five user-supplied
// operations plus the tLast/tNext bookkeeping spec.md §3.5 assigns to
// every leaf coordinator node.
type leafNode[T Time[T], M any] struct {
	id     string
	atomic Atomic[T, M]
	rt     *runtimeContext[T, M]
	tLast  T
	tNext  T
}

func (n *leafNode[T, M]) TNext() T { return n.tNext }

func (n *leafNode[T, M]) Init(t T) {
	n.tLast = t
	advance := n.atomic.Advance()
	n.tNext = t.Add(advance)
	n.checkFabricatedInfinity(t, advance, n.tNext)
	n.maybeEmitPassivate()
}

// checkFabricatedInfinity enforces that the only way a model's tNext
// becomes the passivation sentinel is by Advance() returning the time
// type's own Infinity() (or tLast already being infinite, which Add
// saturates through). A model that instead returns some other
// sufficiently-large finite value to mean "never scheduled" — the
// original source's event_stream.hpp hardcoding a local constant 1000 for
// exactly this purpose — would land on tNext == Infinity by coincidence
// of arithmetic rather than by declaring it, which this rejects.
func (n *leafNode[T, M]) checkFabricatedInfinity(tLast, advance, tNext T) {
	inf, ok := any(tLast).(InfiniteTime[T])
	if !ok {
		return
	}
	if isInfinite(tLast) {
		return
	}
	if isInfinite(tNext) && !timeEqual(advance, inf.Infinity()) {
		panic(PanicValue{NodeID: n.id, Err: ErrFabricatedInfinity})
	}
}

func (n *leafNode[T, M]) CollectOutputs(t T) Bag[M] {
	if !timeEqual(t, n.tNext) {
		return nil
	}
	return n.atomic.Output()
}

func (n *leafNode[T, M]) AdvanceSimulation(t T, x Bag[M]) {
	if t.Less(n.tLast) {
		panic(PanicValue{NodeID: n.id, Err: ErrBackwardsTime})
	}
	if n.tNext.Less(t) {
		panic(PanicValue{NodeID: n.id, Err: ErrPastNext})
	}

	imminent := timeEqual(t, n.tNext)
	var kind metrics.TransitionKind
	switch {
	case !x.Empty() && imminent:
		n.atomic.Confluent(x)
		kind = metrics.Confluent
	case !x.Empty() && !imminent:
		n.atomic.External(x, t.Sub(n.tLast))
		kind = metrics.External
	case x.Empty() && imminent:
		n.atomic.Internal()
		kind = metrics.Internal
	default:
		// Neither imminent nor carrying input: nothing to do. A
		// well-behaved caller never reaches this branch, since
		// compositeNode.AdvanceSimulation only calls children that are
		// either imminent or have a non-empty inbound bag.
		return
	}

	n.tLast = t
	advance := n.atomic.Advance()
	next := t.Add(advance)
	if next.Less(t) {
		panic(PanicValue{NodeID: n.id, Err: ErrNegativeAdvance})
	}
	n.checkFabricatedInfinity(t, advance, next)
	n.tNext = next

	n.emitTransition(kind)
	n.maybeEmitPassivate()
}

func (n *leafNode[T, M]) emitTransition(kind metrics.TransitionKind) {
	if n.rt.collector != nil {
		n.rt.collector.RecordTransition(kind)
	}
	n.rt.emitter.Emit(emit.Event{
		RunID:  n.rt.runID,
		Step:   int(n.rt.nextSeq()),
		NodeID: n.id,
		Msg:    "transition",
		Meta:   map[string]interface{}{"kind": string(kind)},
	})
}

func (n *leafNode[T, M]) maybeEmitPassivate() {
	if !isInfinite(n.tNext) {
		return
	}
	n.rt.emitter.Emit(emit.Event{
		RunID:  n.rt.runID,
		Step:   int(n.rt.nextSeq()),
		NodeID: n.id,
		Msg:    "passivate",
	})
}

// compositeNode is the coordinator for a Coupled model: it owns one
// Scheduler to pick its imminent children, routes EIC/IC/EOC couplings,
// and recomputes its own tNext as the minimum of its children's.
type compositeNode[T Time[T], M any] struct {
	id       string
	rt       *runtimeContext[T, M]
	children map[string]coordinatorNode[T, M]
	eic      []string
	ic       []Coupling
	eoc      []string
	sched    Scheduler[T]

	tLast T

	lastCollected   map[string]Bag[M]
	lastCollectedAt T
	collectedValid  bool
}

func buildComposite[T Time[T], M any](id string, c *Coupled[T, M], schedKind SchedulerKind, rt *runtimeContext[T, M]) *compositeNode[T, M] {
	cn := &compositeNode[T, M]{
		id:       id,
		rt:       rt,
		children: make(map[string]coordinatorNode[T, M], len(c.Submodels)),
		eic:      c.EIC,
		ic:       c.IC,
		eoc:      c.EOC,
	}
	for childID, childModel := range c.Submodels {
		cn.children[childID] = buildNode[T, M](qualify(id, childID), childModel, schedKind, rt)
	}

	ids := func() []string {
		out := make([]string, 0, len(cn.children))
		for k := range cn.children {
			out = append(out, k)
		}
		return out
	}
	current := func(childID string) T { return cn.children[childID].TNext() }

	if schedKind == SchedulerPoll {
		cn.sched = NewPollScheduler[T](ids, current)
	} else {
		cn.sched = NewHeapScheduler[T](current)
	}
	return cn
}

func (n *compositeNode[T, M]) TNext() T {
	if t, ok := n.peekMin(); ok {
		return t
	}
	var zero T
	return zero
}

// peekMin returns the smallest current tNext among children without
// disturbing the scheduler's state.
func (n *compositeNode[T, M]) peekMin() (T, bool) {
	id, t, ok := n.sched.PopMin()
	if !ok {
		return t, false
	}
	n.sched.Enqueue(id, t)
	return t, true
}

// imminentSet returns the ids of children whose tNext equals t, without
// disturbing scheduler state — a pure peek so repeated CollectOutputs
// calls at the same t are idempotent (spec.md §8).
func (n *compositeNode[T, M]) imminentSet(t T) []string {
	if _, ok := n.sched.(*pollScheduler[T]); ok {
		// A pollScheduler's PopMin never removes anything, so draining it
		// would return the same child forever: scan the children instead.
		var ids []string
		for id, child := range n.children {
			if timeEqual(child.TNext(), t) {
				ids = append(ids, id)
			}
		}
		return ids
	}
	type popped struct {
		id string
		t  T
	}
	var ids []string
	var stash []popped
	for {
		id, it, ok := n.sched.PopMin()
		if !ok {
			break
		}
		if !timeEqual(it, t) {
			n.sched.Enqueue(id, it)
			break
		}
		ids = append(ids, id)
		stash = append(stash, popped{id, it})
	}
	for _, p := range stash {
		n.sched.Enqueue(p.id, p.t)
	}
	return ids
}

func (n *compositeNode[T, M]) Init(t T) {
	for id, child := range n.children {
		child.Init(t)
		n.sched.Enqueue(id, child.TNext())
	}
	n.tLast = t
}

func (n *compositeNode[T, M]) CollectOutputs(t T) Bag[M] {
	ids := n.imminentSet(t)
	collected := make(map[string]Bag[M], len(ids))
	for _, id := range ids {
		collected[id] = n.children[id].CollectOutputs(t)
	}
	n.lastCollected = collected
	n.lastCollectedAt = t
	n.collectedValid = true

	var out Bag[M]
	for _, id := range n.eoc {
		out = out.Union(collected[id])
	}
	return out
}

func (n *compositeNode[T, M]) AdvanceSimulation(t T, x Bag[M]) {
	if t.Less(n.tLast) {
		panic(PanicValue{NodeID: n.id, Err: ErrBackwardsTime})
	}
	if tn := n.TNext(); tn.Less(t) {
		panic(PanicValue{NodeID: n.id, Err: ErrPastNext})
	}

	if !n.collectedValid || !timeEqual(n.lastCollectedAt, t) {
		n.CollectOutputs(t)
	}
	collected := n.lastCollected

	inbound := make(map[string]Bag[M])
	for _, id := range n.eic {
		inbound[id] = inbound[id].Union(x)
	}
	for _, edge := range n.ic {
		if out, ok := collected[edge.From]; ok && !out.Empty() {
			inbound[edge.To] = inbound[edge.To].Union(out)
		}
	}

	touched := make(map[string]bool)
	for _, id := range n.imminentSet(t) {
		touched[id] = true
	}
	for id, b := range inbound {
		if !b.Empty() {
			touched[id] = true
		}
	}

	if n.rt.collector != nil {
		n.rt.collector.SetImminentSetSize(len(touched))
		if ql, ok := n.sched.(interface{ Len() int }); ok {
			n.rt.collector.SetQueueDepth(ql.Len())
		}
	}

	for id := range touched {
		child, ok := n.children[id]
		if !ok {
			continue
		}
		child.AdvanceSimulation(t, inbound[id])
		n.sched.Enqueue(id, child.TNext())
	}

	n.tLast = t
	n.lastCollected = nil
	n.collectedValid = false
}
