// Package devs implements a Parallel DEVS (Discrete Event System
// Specification) simulation kernel: a time domain, an atomic model
// interface, coupled models built from atomics and sub-coupled models, and
// a hierarchical coordinator/simulator tree that drives them forward.
package devs

import "math"

// Time is the constraint a type must satisfy to serve as a PDEVS simulated
// time value. It is deliberately small: total order (Less) and the two
// arithmetic operations the coordinator needs to compute tNext and tLast
// (Add, Sub). T is self-referential so Time[T] methods both consume and
// produce the same concrete time type.
type Time[T any] interface {
	// Less reports whether the receiver comes strictly before other.
	Less(other T) bool

	// Add returns the receiver advanced by delta (typically tLast + Advance()).
	Add(delta T) T

	// Sub returns the receiver's offset from other, used when a model needs
	// elapsed time since its last transition (e.g. Processor's remaining
	// job time).
	Sub(other T) T
}

// InfiniteTime is satisfied by a Time implementation that can produce its
// own "never scheduled" sentinel. The coordinator always asks the time type
// for this value rather than letting a model fabricate a finite stand-in
// (the original source's event_stream.hpp hardcodes a local constant 1000
// for exactly this purpose — that ambiguity is resolved here by pushing the
// sentinel onto the time type itself).
type InfiniteTime[T any] interface {
	Time[T]

	// Infinity returns the value greater than every other value of T that a
	// model uses as tNext when it is not scheduled to do anything.
	Infinity() T
}

// IntTime is the default time representation: integer instants, matching
// the original source's usage of plain integral TIME types in its example
// programs (clock ticks, not wall-clock durations).
type IntTime int64

// Infinity is the sentinel IntTime value meaning "never scheduled".
const Infinity IntTime = math.MaxInt64

// Less reports t < other.
func (t IntTime) Less(other IntTime) bool { return t < other }

// Add returns t + delta. If either operand is Infinity the result is
// Infinity rather than a wrapped value, since a passive model's
// tLast + Infinity and Infinity plus any finite delta must still compare
// greater than every finite instant.
func (t IntTime) Add(delta IntTime) IntTime {
	if t == Infinity || delta == Infinity {
		return Infinity
	}
	return t + delta
}

// Sub returns t - other.
func (t IntTime) Sub(other IntTime) IntTime { return t - other }

// Infinity returns the IntTime sentinel for "never scheduled".
func (t IntTime) Infinity() IntTime { return Infinity }

var (
	_ Time[IntTime]         = IntTime(0)
	_ InfiniteTime[IntTime] = IntTime(0)
)
