// Package emit provides event emission and observability for a PDEVS run.
package emit

import "context"

// Emitter receives and processes observability events from a simulation run.
//
// Emitters enable pluggable observability backends:
// - Logging: stdout, files, syslog.
// - Distributed tracing: OpenTelemetry, Jaeger, Zipkin.
// - In-memory history for tests and debugging.
//
// Implementations should be:
// - Non-blocking: the coordinator calls Emit synchronously from the same
//   goroutine driving the simulation, so a slow Emitter is a slow run.
// - Thread-safe: a BufferedEmitter's Flush may run on a different goroutine
//   than Emit.
// - Resilient: handle failures internally (log and continue), never panic.
type Emitter interface {
	// Emit sends a single observability event to the configured backend.
	//
	// Emit must not block the simulation for long and must not panic;
	// errors should be absorbed internally (logged, not propagated) since
	// the coordinator has no way to react to an observability failure.
	Emit(event Event)

	// EmitBatch sends multiple events in a single operation, typically used
	// when flushing a buffer. Events should be processed in order to
	// preserve the happened-before relationship between run steps.
	//
	// Returns an error only for sinks with a genuine failure mode (a store
	// write, a network export); in-memory sinks should always return nil.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush ensures all buffered events have reached the backend. Call it
	// at the end of a run to avoid losing the final few events when the
	// emitter batches internally. Implementations with no internal buffer
	// should return nil immediately.
	Flush(ctx context.Context) error
}
