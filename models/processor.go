package models

import "github.com/dvicino/pdevs/devs"

// Processor is a fixed-delay FIFO job processor: it holds a queue of jobs
// and emits the head job Processing time units after it arrives, one job
// at a time. Grounded on basic_models/processor.hpp.
type Processor[T devs.Time[T], M any] struct {
	Processing T

	next T
	jobs []M
}

// NewProcessor builds a passivated Processor with the given per-job delay.
func NewProcessor[T devs.Time[T], M any](processing T) *Processor[T, M] {
	return &Processor[T, M]{Processing: processing, next: infinity[T]()}
}

// Advance returns the time remaining until the head job completes, or
// Infinity if the queue is empty.
func (p *Processor[T, M]) Advance() T { return p.next }

// Output returns the head job, the one about to complete.
func (p *Processor[T, M]) Output() devs.Bag[M] {
	if len(p.jobs) == 0 {
		return nil
	}
	return devs.Bag[M]{p.jobs[0]}
}

// Internal completes the head job and reschedules for the next one, if any.
func (p *Processor[T, M]) Internal() {
	p.jobs = p.jobs[1:]
	if len(p.jobs) == 0 {
		p.next = infinity[T]()
	} else {
		p.next = p.Processing
	}
}

// External enqueues newly arrived jobs. An idle processor starts its clock
// at Processing; a busy one has its remaining time reduced by the elapsed
// time e since its last transition.
func (p *Processor[T, M]) External(x devs.Bag[M], e T) {
	if len(p.jobs) == 0 {
		p.next = p.Processing
	} else {
		p.next = p.next.Sub(e)
	}
	p.jobs = append(p.jobs, x...)
}

// Confluent completes the head job, then enqueues the arriving jobs as if
// delivered at the same instant (elapsed time zero).
func (p *Processor[T, M]) Confluent(x devs.Bag[M]) {
	p.Internal()
	var zero T
	p.External(x, zero)
}

// String names the model for diagnostics and trace output.
func (p *Processor[T, M]) String() string { return "processor" }

var _ devs.Atomic[devs.IntTime, int] = (*Processor[devs.IntTime, int])(nil)
