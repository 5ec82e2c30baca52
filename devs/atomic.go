package devs

// Atomic is a PDEVS atomic model: a state machine with five moving parts
// a coordinator drives, over time values of type T and messages of type M.
//
// A generic interface plus a stateful implementation, rather than a
// single stateless function: a DEVS atomic needs internal state across
// calls that a pure Run(ctx, state) signature cannot express, so the five
// transition-related operations below are methods on the model's own
// concrete type instead of one dispatch function.
type Atomic[T Time[T], M any] interface {
	// Advance returns the time remaining until this model's next internal
	// transition, measured from its last transition. The coordinator
	// computes tNext = tLast + Advance(). A model that never schedules
	// itself internally (a pure reactor) returns the time type's Infinity.
	Advance() T

	// Output returns the message bag this model emits at the instant of
	// its next internal or confluent transition. The coordinator calls
	// Output before Internal/Confluent, per the PDEVS Y(tNext) before
	// delta_int(s) ordering — once Internal or Confluent runs, the
	// outputs that correspond to the prior state are gone.
	Output() Bag[M]

	// Internal fires when this model is imminent (t == tNext) with no
	// external input pending. It must update internal state and is
	// followed by a fresh Advance() call to reschedule.
	Internal()

	// External fires when input x arrives at a time strictly before
	// tNext. e is the elapsed time since the model's last transition
	// (t - tLast); models that care how long they've been waiting (a
	// Processor counting down a job) use e to adjust remaining state.
	External(x Bag[M], e T)

	// Confluent fires when input arrives at exactly t == tNext: both an
	// internal transition and an external transition are due at once.
	// Implementations typically run Internal() then External(x, zero)
	// in that order, per the original source's basic models, but the
	// ordering is the model's choice.
	Confluent(x Bag[M])

	// String names the model for diagnostics and trace output.
	String() string
}

// AtomicFunc-style single-method adapters have no PDEVS analogue: every
// atomic needs to carry state across the five calls above, so there is no
// stateless function signature to adapt the way NodeFunc adapts Node. A
// model's concrete type is its state.

// DomainError reports that External or Confluent was called on a model
// whose input domain is empty — e.g. a pure generator, which only ever
// produces output and never accepts external events. A struct error
// carrying which model and what operation was attempted, with Unwrap
// support for errors.Is/As.
type DomainError struct {
	ModelID   string
	Operation string // "External" or "Confluent"
	Cause     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.ModelID + ": " + e.Operation + " called outside model's input domain"
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Cause
}
