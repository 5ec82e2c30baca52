package devs

import "container/heap"

// Scheduler selects, among a composite node's children, the one(s) with
// the smallest next-event time. Two interchangeable strategies are
// provided: heapScheduler (a priority queue, for large fan-out) and
// pollScheduler (linear scan, for small fan-out where heap bookkeeping
// isn't worth it) — per spec.md §4.E / §9's "expose the scheduler as an
// interface with two operations".
//
// heapScheduler keeps a container/heap min-heap keyed by next-event time,
// with lazy stale-entry discard on pop rather than eager removal on every
// reschedule. Two things a bounded producer/consumer work queue would
// need are deliberately absent: backpressure (there is no concurrent
// producer to throttle — PDEVS scheduling is single-threaded and
// synchronous per spec.md §5) and a deterministic tie-break hash order
// (PDEVS breaks ties by running every simultaneous-imminent child
// together in one step, never by picking one over another via an
// arbitrary order key).
type Scheduler[T Time[T]] interface {
	// Enqueue records that child id's next event is scheduled at time t.
	// pollScheduler ignores this call; heapScheduler pushes it onto its
	// internal heap.
	Enqueue(id string, t T)

	// PopMin returns the id with the smallest current next-event time
	// among the scheduler's known children, or ok=false if none remain
	// scheduled. "Current" matters because a child's tNext can change
	// between Enqueue calls (every transition reschedules); the query
	// function passed at construction is always consulted for the live
	// value, never a cached one.
	PopMin() (id string, t T, ok bool)

	// Remove excludes id from selection until its next Enqueue. The
	// coordinator does not call it: passivated children stay queued with
	// an Infinity time.
	Remove(id string)
}

// heapEntry is one (child id, scheduled time) pair stored in the heap.
// Entries can go stale: a child may be rescheduled or removed after being
// pushed, and the stale copy is only discarded lazily, on pop.
type heapEntry[T Time[T]] struct {
	id string
	t  T
}

type entryHeap[T Time[T]] []heapEntry[T]

func (h entryHeap[T]) Len() int            { return len(h) }
func (h entryHeap[T]) Less(i, j int) bool  { return h[i].t.Less(h[j].t) }
func (h entryHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap[T]) Push(x interface{}) { *h = append(*h, x.(heapEntry[T])) }
func (h *entryHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// heapScheduler is a priority-queue Scheduler. Stale entries (pushed
// before a child's tNext changed) are discarded lazily at pop time by
// re-checking current against the live value the query function reports.
type heapScheduler[T Time[T]] struct {
	h       entryHeap[T]
	current func(id string) T
	removed map[string]bool
}

// NewHeapScheduler returns a priority-queue Scheduler. current must report
// a child's live tNext; it is consulted on every pop to detect staleness.
func NewHeapScheduler[T Time[T]](current func(id string) T) Scheduler[T] {
	s := &heapScheduler[T]{current: current, removed: make(map[string]bool)}
	heap.Init(&s.h)
	return s
}

func (s *heapScheduler[T]) Enqueue(id string, t T) {
	delete(s.removed, id)
	heap.Push(&s.h, heapEntry[T]{id: id, t: t})
}

func (s *heapScheduler[T]) Remove(id string) {
	s.removed[id] = true
}

// Len reports the number of entries currently queued, stale ones
// included — an approximate depth used only for the QueueDepth metric,
// not for any scheduling decision.
func (s *heapScheduler[T]) Len() int {
	return s.h.Len()
}

func (s *heapScheduler[T]) PopMin() (string, T, bool) {
	var zero T
	for s.h.Len() > 0 {
		top := s.h[0]
		live := s.current(top.id)
		if s.removed[top.id] {
			heap.Pop(&s.h)
			continue
		}
		if !live.Less(top.t) && !top.t.Less(live) {
			// Entry matches the child's live tNext: valid.
			heap.Pop(&s.h)
			return top.id, top.t, true
		}
		// Stale: the child's schedule moved since this entry was
		// pushed. Discard and keep looking; a fresh Enqueue will have
		// recorded the current value if the child is still scheduled.
		heap.Pop(&s.h)
	}
	return "", zero, false
}

// pollScheduler is a linear-scan Scheduler appropriate for small fan-out,
// where heap bookkeeping costs more than it saves. Enqueue is a no-op: the
// scheduler always re-derives the minimum from the live ids/query
// functions supplied at construction.
type pollScheduler[T Time[T]] struct {
	ids     func() []string
	current func(id string) T
	removed map[string]bool
}

// NewPollScheduler returns a poll-all Scheduler. ids must enumerate every
// child currently known to the owning composite; current reports a
// child's live tNext.
func NewPollScheduler[T Time[T]](ids func() []string, current func(id string) T) Scheduler[T] {
	return &pollScheduler[T]{ids: ids, current: current, removed: make(map[string]bool)}
}

func (s *pollScheduler[T]) Enqueue(id string, t T) {
	delete(s.removed, id)
}

func (s *pollScheduler[T]) Remove(id string) {
	s.removed[id] = true
}

// Len reports the number of candidate ids currently eligible for
// selection (not marked removed).
func (s *pollScheduler[T]) Len() int {
	n := 0
	for _, id := range s.ids() {
		if !s.removed[id] {
			n++
		}
	}
	return n
}

func (s *pollScheduler[T]) PopMin() (string, T, bool) {
	var (
		best  string
		bestT T
		found bool
	)
	for _, id := range s.ids() {
		if s.removed[id] {
			continue
		}
		t := s.current(id)
		if !found || t.Less(bestT) {
			best, bestT, found = id, t, true
		}
	}
	return best, bestT, found
}
