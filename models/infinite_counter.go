package models

import "github.com/dvicino/pdevs/devs"

// InfiniteCounter counts external arrivals and emits the running total the
// instant it receives a trigger message, then resets. It is the basic
// model that forces Confluent to do real work: a trigger can arrive in the
// same bag as, or at the same instant as, an internal reset.
//
// Grounded on basic_models/infinite_counter.hpp, generalized from the
// original's hardcoded "message is int, zero triggers" rule to a pair of
// caller-supplied predicates, since M here is an arbitrary generic message
// type rather than always boost::any holding an int.
type InfiniteCounter[T devs.Time[T], M any] struct {
	// IsTrigger reports whether a message should fire the count and reset
	// the counter, rather than simply being tallied.
	IsTrigger func(m M) bool

	// Encode converts the accumulated count into an outgoing message.
	Encode func(count int) M

	next  T
	count int
}

// NewInfiniteCounter builds a passivated InfiniteCounter with the given
// trigger predicate and output encoder.
func NewInfiniteCounter[T devs.Time[T], M any](isTrigger func(M) bool, encode func(int) M) *InfiniteCounter[T, M] {
	return &InfiniteCounter[T, M]{IsTrigger: isTrigger, Encode: encode, next: infinity[T]()}
}

// NewIntCounter is the common case from the original's examples: messages
// are ints, and the value zero is the trigger.
func NewIntCounter[T devs.Time[T]]() *InfiniteCounter[T, int] {
	return NewInfiniteCounter[T, int](
		func(m int) bool { return m == 0 },
		func(count int) int { return count },
	)
}

// Advance returns zero once a trigger has arrived, Infinity otherwise.
func (c *InfiniteCounter[T, M]) Advance() T { return c.next }

// Output returns the accumulated count, encoded as a message.
func (c *InfiniteCounter[T, M]) Output() devs.Bag[M] { return devs.Bag[M]{c.Encode(c.count)} }

// Internal fires after the count has been emitted: reset and passivate.
func (c *InfiniteCounter[T, M]) Internal() {
	c.next = infinity[T]()
	c.count = 0
}

// External tallies arriving messages. A trigger message schedules an
// immediate emission; non-trigger messages are tallied with no change to
// scheduling.
func (c *InfiniteCounter[T, M]) External(x devs.Bag[M], _ T) {
	triggers := 0
	for _, m := range x {
		if c.IsTrigger(m) {
			triggers++
		}
	}
	if triggers > 0 {
		var zero T
		c.next = zero
		c.count += len(x) - triggers
		return
	}
	c.count += len(x)
}

// Confluent resets from the pending emission, then tallies the arriving
// messages as if delivered at elapsed time zero.
func (c *InfiniteCounter[T, M]) Confluent(x devs.Bag[M]) {
	c.Internal()
	var zero T
	c.External(x, zero)
}

// String names the model for diagnostics and trace output.
func (c *InfiniteCounter[T, M]) String() string { return "infinite_counter" }

var _ devs.Atomic[devs.IntTime, int] = (*InfiniteCounter[devs.IntTime, int])(nil)
