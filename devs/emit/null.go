package emit

import "context"

// NullEmitter implements Emitter by discarding all events.
//
// This is the default sink: zero overhead, safe for concurrent use, useful
// when a run's only interesting output is its message trace, not its
// lifecycle events.
type NullEmitter struct{}

// NewNullEmitter returns an Emitter that discards everything it receives.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(event Event) {}

// EmitBatch discards the events and always returns nil.
func (n *NullEmitter) EmitBatch(ctx context.Context, events []Event) error {
	return nil
}

// Flush is a no-op.
func (n *NullEmitter) Flush(ctx context.Context) error {
	return nil
}
