package models

import "github.com/dvicino/pdevs/devs"

// infinity returns T's "never scheduled" sentinel if T implements
// devs.InfiniteTime, falling back to the zero value otherwise. Mirrors the
// coordinator's own isInfinite degrade-gracefully pattern rather than
// requiring every model to know its concrete time type's sentinel the way
// the original source hardcodes a local constant 1000 in event_stream.hpp.
func infinity[T devs.Time[T]]() T {
	var zero T
	if inf, ok := any(zero).(devs.InfiniteTime[T]); ok {
		return inf.Infinity()
	}
	return zero
}
