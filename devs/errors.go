package devs

import "errors"

// Construction-time errors, returned from Coupled.Validate() / NewRunner
// rather than panicked — spec.md §7's "malformed composition" category is
// detected before the first step, not raised mid-run.
var (
	// ErrDanglingCoupling reports an EIC/IC/EOC endpoint that does not
	// name a member of the composite's Submodels.
	ErrDanglingCoupling = errors.New("coupling references a submodel outside this composite")

	// ErrSharedSubmodel reports the same submodel value reachable from
	// more than one parent in the coupled tree — the ownership graph
	// must be a tree, never a DAG.
	ErrSharedSubmodel = errors.New("submodel is shared across more than one parent")

	// ErrFabricatedInfinity reports a model whose Advance() returned a
	// finite value that still put its tNext on the time type's Infinity —
	// an ad-hoc sentinel rather than the time type's own Infinity.
	ErrFabricatedInfinity = errors.New("model used a value other than the time type's own Infinity as its passivation sentinel")
)

// Runtime precondition violations, per spec.md §7 category 1 ("Contract
// violation"): these are fatal programming errors. The coordinator panics
// with one of these values rather than returning an error, because there
// is no recovery path mid-simulation — the engine offers no rollback.
// Recovery, if any, belongs at the cmd/ boundary (print a diagnostic, exit
// non-zero), never inside the engine itself.
var (
	// ErrBackwardsTime reports advanceSimulation called with t < tLast.
	ErrBackwardsTime = errors.New("advanceSimulation called with t before tLast")

	// ErrPastNext reports advanceSimulation called with t > tNext.
	ErrPastNext = errors.New("advanceSimulation called with t after tNext")

	// ErrDomainViolation reports External or Confluent invoked on a model
	// whose input domain is empty (a pure generator, for instance).
	ErrDomainViolation = errors.New("external or confluent called on a model outside its input domain")

	// ErrNegativeAdvance reports a model's Advance() returning a negative
	// duration, which would move tNext behind tLast.
	ErrNegativeAdvance = errors.New("atomic model's Advance() returned a negative duration")
)

// PanicValue is the value the coordinator panics with on a runtime
// precondition violation, carrying enough context for a cmd/ boundary
// recover() to print a useful diagnostic.
type PanicValue struct {
	NodeID string
	Err    error
}

// Error implements the error interface so PanicValue satisfies `error` when
// recovered and re-wrapped.
func (p PanicValue) Error() string {
	return p.NodeID + ": " + p.Err.Error()
}

// Unwrap supports errors.Is/As against the sentinel errors above.
func (p PanicValue) Unwrap() error {
	return p.Err
}
