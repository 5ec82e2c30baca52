package devs

import "testing"

func TestHeapSchedulerPopMinOrder(t *testing.T) {
	live := map[string]IntTime{"a": 5, "b": 2, "c": 9}
	s := NewHeapScheduler[IntTime](func(id string) IntTime { return live[id] })
	for id, t := range live {
		s.Enqueue(id, t)
	}

	id, tm, ok := s.PopMin()
	if !ok || id != "b" || tm != 2 {
		t.Fatalf("PopMin() = (%q, %v, %v), want (b, 2, true)", id, tm, ok)
	}
}

func TestHeapSchedulerDiscardsStaleEntries(t *testing.T) {
	live := map[string]IntTime{"a": 5}
	s := NewHeapScheduler[IntTime](func(id string) IntTime { return live[id] })

	s.Enqueue("a", 1) // stale: child's live tNext has since moved to 5
	s.Enqueue("a", 5) // fresh

	id, tm, ok := s.PopMin()
	if !ok || id != "a" || tm != 5 {
		t.Fatalf("PopMin() = (%q, %v, %v), want (a, 5, true) after discarding stale entry", id, tm, ok)
	}
	if _, _, ok := s.PopMin(); ok {
		t.Error("PopMin() after exhausting entries = ok, want false")
	}
}

func TestHeapSchedulerRemove(t *testing.T) {
	live := map[string]IntTime{"a": 1, "b": 2}
	s := NewHeapScheduler[IntTime](func(id string) IntTime { return live[id] })
	s.Enqueue("a", 1)
	s.Enqueue("b", 2)
	s.Remove("a")

	id, _, ok := s.PopMin()
	if !ok || id != "b" {
		t.Fatalf("PopMin() after Remove(a) = (%q, _, %v), want (b, true)", id, ok)
	}
}

func TestPollSchedulerIgnoresEnqueueScansLive(t *testing.T) {
	live := map[string]IntTime{"a": 5, "b": 2, "c": 9}
	ids := func() []string { return []string{"a", "b", "c"} }
	s := NewPollScheduler[IntTime](ids, func(id string) IntTime { return live[id] })

	s.Enqueue("z", 0) // ignored: "z" isn't in ids()

	id, tm, ok := s.PopMin()
	if !ok || id != "b" || tm != 2 {
		t.Fatalf("PopMin() = (%q, %v, %v), want (b, 2, true)", id, tm, ok)
	}
}

func TestPollSchedulerReflectsLiveChangesWithoutReenqueue(t *testing.T) {
	live := map[string]IntTime{"a": 5, "b": 2}
	ids := func() []string { return []string{"a", "b"} }
	s := NewPollScheduler[IntTime](ids, func(id string) IntTime { return live[id] })

	live["b"] = 10 // b's schedule moved after construction, no Enqueue call

	id, tm, ok := s.PopMin()
	if !ok || id != "a" || tm != 5 {
		t.Fatalf("PopMin() = (%q, %v, %v), want (a, 5, true)", id, tm, ok)
	}
}

func TestPollSchedulerRemoveExcludesCandidate(t *testing.T) {
	live := map[string]IntTime{"a": 1, "b": 2}
	ids := func() []string { return []string{"a", "b"} }
	s := NewPollScheduler[IntTime](ids, func(id string) IntTime { return live[id] })
	s.Remove("a")

	id, _, ok := s.PopMin()
	if !ok || id != "b" {
		t.Fatalf("PopMin() after Remove(a) = (%q, _, %v), want (b, true)", id, ok)
	}
}

func TestSchedulersEmptyReturnsNotOK(t *testing.T) {
	h := NewHeapScheduler[IntTime](func(string) IntTime { return 0 })
	if _, _, ok := h.PopMin(); ok {
		t.Error("empty heapScheduler.PopMin() = ok, want false")
	}

	p := NewPollScheduler[IntTime](func() []string { return nil }, func(string) IntTime { return 0 })
	if _, _, ok := p.PopMin(); ok {
		t.Error("empty pollScheduler.PopMin() = ok, want false")
	}
}
