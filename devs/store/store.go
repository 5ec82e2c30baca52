// Package store provides append-only persistence for a run's output trace.
//
// Simulation has no mid-run checkpoint/resume: a PDEVS run is
// deterministic and reproducible from its initial coupled model and input
// trace alone, so there is nothing to roll back to that the inputs
// themselves don't already determine (spec.md's rollback Non-goal). What
// a TraceStore backs instead is the "event-stream collaborator" contract
// of spec.md §6: a recorded run can be re-read later through
// models.EventStream, whether to inspect it, feed it as input to another
// run, or compare two runs for regression.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested run ID has no recorded trace.
var ErrNotFound = errors.New("not found")

// Record is one (time, message) pair as recorded from a composite's
// external output coupling.
type Record struct {
	Time string
	Msg  string
}

// TraceStore persists a run's output trace and makes it re-readable.
//
// A persistence interface narrowed from a full
// checkpoint/idempotency/outbox surface (SaveStep, LoadLatest,
// SaveCheckpoint(V2), CheckIdempotency, PendingEvents, MarkEventsEmitted)
// to the two operations a run actually needs: append an output as it's
// produced, and load the full trace back. Time is carried as a string
// (the caller formats it with whatever T.String() or fmt.Sprint produces)
// so TraceStore itself never needs to be generic over the simulation's
// time type.
type TraceStore interface {
	// Append records one output produced during runID, in the order it
	// was produced. Implementations must preserve insertion order;
	// PDEVS output is already time-ordered by construction (the
	// coordinator only ever advances forward), so no reordering by Time
	// is performed on read.
	Append(ctx context.Context, runID string, t string, msg string) error

	// Load returns every record appended under runID, oldest first.
	// Returns ErrNotFound if runID has no records.
	Load(ctx context.Context, runID string) ([]Record, error)
}

// NewRunID generates a fresh run identifier for callers that don't want
// to assign their own (the cmd/ examples use this by default).
func NewRunID() string {
	return uuid.NewString()
}
