// Package models collects reusable PDEVS atomic models that sit outside
// the simulation kernel proper: periodic emitters, job processors, a
// confluent-aware counter and a recorded-trace player. None of them
// touch devs's scheduling internals; each is just an devs.Atomic
// implementation built from the primitives devs exports.
//
// Grounded on the original source's basic_models/ headers, which ship
// alongside the pdevs/ kernel for exactly this reason: a kernel is only
// useful once there are a few off-the-shelf models to wire into it.
package models

import "github.com/dvicino/pdevs/devs"

// Generator is a pure source: it emits a fixed value once per period and
// never accepts input. Grounded on basic_models/generator.hpp.
type Generator[T devs.Time[T], M any] struct {
	Period T
	Value  M
}

// NewGenerator builds a Generator that emits value every period.
func NewGenerator[T devs.Time[T], M any](period T, value M) *Generator[T, M] {
	return &Generator[T, M]{Period: period, Value: value}
}

// Advance always returns Period: a generator reschedules itself forever.
func (g *Generator[T, M]) Advance() T { return g.Period }

// Output returns the configured value as a singleton bag.
func (g *Generator[T, M]) Output() devs.Bag[M] { return devs.Bag[M]{g.Value} }

// Internal does nothing; the generator's state never changes between ticks.
func (g *Generator[T, M]) Internal() {}

// External panics: a Generator has an empty input domain.
func (g *Generator[T, M]) External(devs.Bag[M], T) {
	panic(&devs.DomainError{ModelID: g.String(), Operation: "External"})
}

// Confluent panics: a Generator has an empty input domain.
func (g *Generator[T, M]) Confluent(devs.Bag[M]) {
	panic(&devs.DomainError{ModelID: g.String(), Operation: "Confluent"})
}

// String names the model for diagnostics and trace output.
func (g *Generator[T, M]) String() string { return "generator" }

var _ devs.Atomic[devs.IntTime, int] = (*Generator[devs.IntTime, int])(nil)
