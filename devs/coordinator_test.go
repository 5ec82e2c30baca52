package devs

import (
	"errors"
	"testing"

	"github.com/dvicino/pdevs/devs/emit"
)

// tickGenerator is a pure generator: it never accepts input, emits one
// message per period, and has no passivation state — the minimal model
// for exercising internal-transition-only coordinator paths.
type tickGenerator struct {
	period IntTime
	ticks  int
}

func (g *tickGenerator) Advance() IntTime    { return g.period }
func (g *tickGenerator) Output() Bag[string] { return Bag[string]{"tick"} }
func (g *tickGenerator) Internal()           { g.ticks++ }
func (g *tickGenerator) External(Bag[string], IntTime) {
	panic(&DomainError{ModelID: "tickGenerator", Operation: "External"})
}
func (g *tickGenerator) Confluent(Bag[string]) {
	panic(&DomainError{ModelID: "tickGenerator", Operation: "Confluent"})
}
func (g *tickGenerator) String() string { return "tickGenerator" }

// echoer is a pure reactor: it never schedules itself (Advance is
// Infinity) and simply re-emits whatever it receives on its next
// Output() call.
type echoer struct {
	pending Bag[string]
	buf     Bag[string]
}

func (e *echoer) Advance() IntTime {
	if e.pending.Empty() {
		return Infinity
	}
	return 0
}
func (e *echoer) Output() Bag[string] { return e.pending }
func (e *echoer) Internal()           { e.pending = nil }
func (e *echoer) External(x Bag[string], _ IntTime) {
	e.buf = e.buf.Union(x)
	e.pending = x
}
func (e *echoer) Confluent(x Bag[string]) {
	e.pending = nil
	e.External(x, 0)
}
func (e *echoer) String() string { return "echoer" }

// fabricator never returns IntTime's own Infinity sentinel; instead it
// computes a delta that happens to land exactly on Infinity by ordinary
// addition, imitating a model that hardcodes its own "never scheduled"
// constant instead of asking the time type for one.
type fabricator struct{}

func (fabricator) Advance() IntTime              { return Infinity - 5 }
func (fabricator) Output() Bag[string]           { return nil }
func (fabricator) Internal()                     {}
func (fabricator) External(Bag[string], IntTime) {}
func (fabricator) Confluent(Bag[string])         {}
func (fabricator) String() string                { return "fabricator" }

func newTestCoordinator(id string, models map[string]Atomic[IntTime, string], eic []string, ic []Coupling, eoc []string) coordinatorNode[IntTime, string] {
	c := NewAtomicSet[IntTime, string](id, models, eic, ic, eoc)
	rt := &runtimeContext[IntTime, string]{emitter: emit.NewNullEmitter()}
	return buildNode[IntTime, string](id, c, SchedulerHeap, rt)
}

func TestLeafInvariantTNextAfterTransition(t *testing.T) {
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"gen": &tickGenerator{period: 3},
	}, nil, nil, []string{"gen"})

	root.Init(0)
	if root.TNext() != 3 {
		t.Fatalf("TNext() after Init = %v, want 3", root.TNext())
	}

	_ = root.CollectOutputs(3)
	root.AdvanceSimulation(3, nil)
	if root.TNext() != 6 {
		t.Errorf("TNext() after transition = %v, want tLast(3) + advance(3) = 6", root.TNext())
	}
}

func TestCollectOutputsIdempotent(t *testing.T) {
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"gen": &tickGenerator{period: 2},
	}, nil, nil, []string{"gen"})
	root.Init(0)

	first := root.CollectOutputs(2)
	second := root.CollectOutputs(2)

	if len(first) != len(second) {
		t.Fatalf("CollectOutputs called twice at same t returned different bags: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("CollectOutputs[%d] = %v, want %v (idempotent)", i, second[i], first[i])
		}
	}
}

// recordingAtomic wraps an echoer-shaped model and records which
// transition kind fired, to check the empty-input-at-tNext boundary
// rule directly (spec.md §8).
type recordingAtomic struct {
	*echoer
	lastCall string
}

func (r *recordingAtomic) Internal() {
	r.lastCall = "internal"
	r.echoer.Internal()
}
func (r *recordingAtomic) External(x Bag[string], e IntTime) {
	r.lastCall = "external"
	r.echoer.External(x, e)
}
func (r *recordingAtomic) Confluent(x Bag[string]) {
	r.lastCall = "confluent"
	r.echoer.Confluent(x)
}

func TestEmptyInputAtTNextInvokesInternalNotConfluent(t *testing.T) {
	inner := &recordingAtomic{echoer: &echoer{}}
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"e": inner,
	}, []string{"e"}, nil, []string{"e"})

	root.Init(0)
	// Drive the echoer into a scheduled (non-Infinity) state first by
	// delivering external input, so a later empty-bag delivery lands
	// exactly at tNext and must resolve to Internal.
	_ = root.CollectOutputs(0)
	root.AdvanceSimulation(0, Bag[string]{"hello"})

	next := root.TNext()
	_ = root.CollectOutputs(next)
	root.AdvanceSimulation(next, nil)

	if inner.lastCall != "internal" {
		t.Errorf("lastCall = %q, want %q for an empty bag delivered at t == tNext", inner.lastCall, "internal")
	}
}

func TestSiblingsImminentTogetherTieBreak(t *testing.T) {
	a := &tickGenerator{period: 5}
	b := &tickGenerator{period: 5}
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"a": a, "b": b,
	}, nil, nil, []string{"a", "b"})

	root.Init(0)
	out := root.CollectOutputs(5)
	if len(out) != 2 {
		t.Fatalf("CollectOutputs at simultaneous imminent time returned %d messages, want 2", len(out))
	}
	root.AdvanceSimulation(5, nil)

	if a.ticks != 1 || b.ticks != 1 {
		t.Errorf("ticks = (a=%d, b=%d), want both siblings to have fired together", a.ticks, b.ticks)
	}
}

func TestEICRoutesExternalInputToChild(t *testing.T) {
	inner := &echoer{}
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"e": inner,
	}, []string{"e"}, nil, []string{"e"})

	root.Init(0)
	_ = root.CollectOutputs(0)
	root.AdvanceSimulation(0, Bag[string]{"ping"})

	if len(inner.buf) != 1 || inner.buf[0] != "ping" {
		t.Errorf("echoer received %v, want [ping] routed via EIC", inner.buf)
	}
}

func TestICRoutesOutputBetweenChildren(t *testing.T) {
	gen := &tickGenerator{period: 1}
	echo := &echoer{}
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"gen": gen, "echo": echo,
	}, nil, []Coupling{{From: "gen", To: "echo"}}, []string{"echo"})

	root.Init(0)
	_ = root.CollectOutputs(1)
	root.AdvanceSimulation(1, nil)

	if len(echo.buf) != 1 || echo.buf[0] != "tick" {
		t.Errorf("echo.buf = %v, want [tick] routed via IC from gen", echo.buf)
	}
}

func TestFabricatedInfinityPanics(t *testing.T) {
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"f": fabricator{},
	}, nil, nil, nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Init did not panic, want ErrFabricatedInfinity")
		}
		pv, ok := r.(PanicValue)
		if !ok {
			t.Fatalf("recovered %T, want PanicValue", r)
		}
		if !errors.Is(pv, ErrFabricatedInfinity) {
			t.Errorf("recovered %v, want wrapping ErrFabricatedInfinity", pv)
		}
	}()
	root.Init(5)
}

func TestPassivatedModelNeverFires(t *testing.T) {
	inner := &echoer{}
	root := newTestCoordinator("root", map[string]Atomic[IntTime, string]{
		"e": inner,
	}, nil, nil, []string{"e"})

	root.Init(0)
	if root.TNext() != Infinity {
		t.Fatalf("TNext() for a passivated-only model = %v, want Infinity", root.TNext())
	}
}
