package devs

import "fmt"

// submodel is implemented by both Atomic[T,M] (a leaf) and *Coupled[T,M] (a
// composite), letting Coupled.Submodels hold a heterogeneous mix of the two
// without an explicit tagged-union field: a type switch in coordinator.go
// distinguishes them at tree-construction time.
type submodel interface {
	isSubmodel()
}

// Submodel is the exported name for submodel, letting client code outside
// this package build a Coupled.Submodels map that mixes Atomic leaves
// (via WrapAtomic) with nested *Coupled composites (which already satisfy
// it directly) when NewAtomicSet's flat-atomics convenience constructor
// isn't enough.
type Submodel = submodel

// WrapAtomic adapts an Atomic model into a Submodel for use in a hand-built
// Coupled.Submodels map alongside nested *Coupled children. NewAtomicSet
// calls this internally for the common flat-atomics case.
func WrapAtomic[T Time[T], M any](a Atomic[T, M]) Submodel {
	return wrapAtomic[T, M](a)
}

// Coupling is an ordered internal-coupling edge: an output of From is
// routed as input to To.
type Coupling struct {
	From string
	To   string
}

// Coupled is an immutable PDEVS composite description: a named set of
// submodels (each either an Atomic or another Coupled) plus three coupling
// tables. It has no named ports — "this-port" in the original formalism
// collapses to the composite's single inbox/output bag, since every model
// in this kernel shares one message type M.
//
// Shaped after coupled.hpp's coupled_description (models,
// external_input_coupling, internal_coupling, external_output_coupling).
// A Predicate-style conditional-edge concept has no PDEVS analogue (DEVS
// routing is unconditional structural coupling, never state-predicated) so
// couplings here are plain (from, to) pairs, not conditional edges.
type Coupled[T Time[T], M any] struct {
	ID        string
	Submodels map[string]submodel

	// EIC lists the children that receive messages arriving at this
	// composite's own inbox (external input coupling).
	EIC []string

	// IC routes an output of one child as input to another.
	IC []Coupling

	// EOC lists the children whose outputs bubble up as this composite's
	// own output (external output coupling).
	EOC []string
}

func (c *Coupled[T, M]) isSubmodel() {}

// atomicModel wraps an Atomic so it satisfies submodel without requiring
// every client-written model type to also declare isSubmodel().
type atomicModel[T Time[T], M any] struct {
	Atomic[T, M]
}

func (atomicModel[T, M]) isSubmodel() {}

// wrapAtomic adapts an Atomic model for storage in Coupled.Submodels.
func wrapAtomic[T Time[T], M any](a Atomic[T, M]) submodel {
	return atomicModel[T, M]{a}
}

// New builds a Coupled from an explicit submodel map and coupling lists.
// Go's generics have no separate initializer-list constructor form, so the
// two C++ constructor flavors (brace-init list vs. vector argument)
// collapse into this one map/slice-argument constructor.
func New[T Time[T], M any](id string, models map[string]submodel, eic []string, ic []Coupling, eoc []string) *Coupled[T, M] {
	return &Coupled[T, M]{
		ID:        id,
		Submodels: models,
		EIC:       eic,
		IC:        ic,
		EOC:       eoc,
	}
}

// NewAtomicSet is a convenience constructor for the common case of coupling
// together a flat set of Atomic leaves with no nested Coupled children.
func NewAtomicSet[T Time[T], M any](id string, atomics map[string]Atomic[T, M], eic []string, ic []Coupling, eoc []string) *Coupled[T, M] {
	models := make(map[string]submodel, len(atomics))
	for name, a := range atomics {
		models[name] = wrapAtomic[T, M](a)
	}
	return New[T, M](id, models, eic, ic, eoc)
}

// Validate checks that every coupling endpoint names an actual submodel
// and that the submodel tree is genuinely a tree (no submodel instance
// reachable from two different parents), returning ErrDanglingCoupling or
// ErrSharedSubmodel (wrapped with the offending name) if not. This is the
// construction-time check of spec.md §7's "malformed composition":
// detected before the first step, never a runtime panic.
func (c *Coupled[T, M]) Validate() error {
	if err := c.validateCouplings(); err != nil {
		return err
	}
	return c.checkOwnership(make(map[any]bool))
}

func (c *Coupled[T, M]) validateCouplings() error {
	has := func(id string) bool {
		_, ok := c.Submodels[id]
		return ok
	}
	for _, id := range c.EIC {
		if !has(id) {
			return fmt.Errorf("%w: EIC references unknown submodel %q in %q", ErrDanglingCoupling, id, c.ID)
		}
	}
	for _, edge := range c.IC {
		if !has(edge.From) {
			return fmt.Errorf("%w: IC source %q unknown in %q", ErrDanglingCoupling, edge.From, c.ID)
		}
		if !has(edge.To) {
			return fmt.Errorf("%w: IC destination %q unknown in %q", ErrDanglingCoupling, edge.To, c.ID)
		}
	}
	for _, id := range c.EOC {
		if !has(id) {
			return fmt.Errorf("%w: EOC references unknown submodel %q in %q", ErrDanglingCoupling, id, c.ID)
		}
	}
	for name, m := range c.Submodels {
		if child, ok := m.(*Coupled[T, M]); ok {
			if err := child.validateCouplings(); err != nil {
				return fmt.Errorf("submodel %q: %w", name, err)
			}
		}
	}
	return nil
}

// checkOwnership walks the whole submodel tree from the root Validate was
// called on, recording each submodel's identity in seen. A submodel
// reachable from more than one parent (the same *Coupled pointer nested
// twice, or the same Atomic instance wrapped into two different
// composites) means the ownership graph is a DAG, not a tree, which this
// kernel's single-parent assumptions (one coordinator owns one child)
// don't tolerate. Identity is the submodel's own comparable value (the
// Atomic, unwrapped, or the *Coupled pointer) — every model in this
// codebase is held by pointer, so this never hits Go's "comparing
// uncomparable type" panic in practice.
func (c *Coupled[T, M]) checkOwnership(seen map[any]bool) error {
	for name, m := range c.Submodels {
		var key any
		switch v := m.(type) {
		case atomicModel[T, M]:
			key = v.Atomic
		case *Coupled[T, M]:
			key = v
		}
		if key != nil {
			if seen[key] {
				return fmt.Errorf("%w: %q in %q", ErrSharedSubmodel, name, c.ID)
			}
			seen[key] = true
		}
		if child, ok := m.(*Coupled[T, M]); ok {
			if err := child.checkOwnership(seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flatten recursively inlines every nested Coupled child into a single
// level, rewriting couplings so the result has equivalent behavior but no
// Coupled submodels of its own (only Atomic leaves).
//
// Ported from flattened_coupled's constructor: a coupled-to-coupled IC edge
// expands into the cartesian product of the source's EOC members and the
// destination's EIC members — both sides may expose more than one
// "outward-facing" child, and every pairing must be connected for the
// inlined composite to behave identically to the nested original (resolved
// as intended per DESIGN.md's Open Question 3).
func Flatten[T Time[T], M any](c *Coupled[T, M]) *Coupled[T, M] {
	flat := &Coupled[T, M]{
		ID:        c.ID,
		Submodels: make(map[string]submodel),
		EIC:       nil,
		IC:        nil,
		EOC:       nil,
	}

	// childEIC/childEOC record, for every nested Coupled submodel that
	// gets inlined away, which of ITS descendants are reachable from its
	// own EIC/EOC — the boundary set Flatten must reconnect through.
	childEIC := make(map[string][]string)
	childEOC := make(map[string][]string)

	for name, m := range c.Submodels {
		switch v := m.(type) {
		case *Coupled[T, M]:
			inlined := Flatten(v)
			for innerName, innerModel := range inlined.Submodels {
				flat.Submodels[qualify(name, innerName)] = innerModel
			}
			for _, e := range inlined.EIC {
				childEIC[name] = append(childEIC[name], qualify(name, e))
			}
			for _, e := range inlined.EOC {
				childEOC[name] = append(childEOC[name], qualify(name, e))
			}
			for _, edge := range inlined.IC {
				flat.IC = append(flat.IC, Coupling{
					From: qualify(name, edge.From),
					To:   qualify(name, edge.To),
				})
			}
		default:
			flat.Submodels[name] = m
		}
	}

	resolveEIC := func(id string) []string {
		if targets, ok := childEIC[id]; ok {
			return targets
		}
		return []string{id}
	}
	resolveEOC := func(id string) []string {
		if sources, ok := childEOC[id]; ok {
			return sources
		}
		return []string{id}
	}

	for _, id := range c.EIC {
		flat.EIC = append(flat.EIC, resolveEIC(id)...)
	}
	for _, id := range c.EOC {
		flat.EOC = append(flat.EOC, resolveEOC(id)...)
	}
	for _, edge := range c.IC {
		// Cartesian product of source's EOC-reachable leaves and
		// destination's EIC-reachable leaves.
		for _, from := range resolveEOC(edge.From) {
			for _, to := range resolveEIC(edge.To) {
				flat.IC = append(flat.IC, Coupling{From: from, To: to})
			}
		}
	}

	return flat
}

func qualify(parent, child string) string {
	return parent + "." + child
}
