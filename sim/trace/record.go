// Package trace provides debug event-trace recording for a simulation run.
// This package has no dependency on sim — it stores plain data, decoupled
// from sim.Customer so that tracing never needs to hold a live reference
// into the simulation's single-owner object graph.
package trace

// EventRecord captures one customer-event-log entry for later summarization
// or dumping, independent of the sim.Customer that produced it.
type EventRecord struct {
	CustomerID uint32
	Kind       string // "ENTERED", "EXITED", "DROPPED_BY"
	PlaceKind  string // "QUEUE", "SERVER"
	PlaceName  string
	Time       float64
}
