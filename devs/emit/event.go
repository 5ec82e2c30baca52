package emit

// Event represents an observability event emitted during a simulation run.
//
// The coordinator emits one Event at well-defined points of the PDEVS
// algorithm: when a run is initialized, when a leaf simulator completes a
// transition, and when a leaf's tNext is Infinity after its Init or a
// transition. Composite coordinators emit no events of their own.
// Emission happens synchronously, after the transition has already been
// applied to model state — an Emitter can never influence scheduling.
type Event struct {
	// RunID identifies the simulation run that produced this event.
	RunID string

	// Step is a run-wide sequence number: the coordinator numbers the
	// events of one run 1, 2, 3, ... in the order it emits them.
	Step int

	// NodeID identifies the coordinator node that produced the event; for
	// "run_init" it is the root coupled model's ID.
	NodeID string

	// Msg names the kind of event: "run_init", "transition", "passivate".
	Msg string

	// Meta carries event-specific structured data, e.g. which PDEVS
	// transition fired ("internal", "external", "confluent"), the
	// simulated time as a string, or the size of the output bag.
	Meta map[string]interface{}
}
