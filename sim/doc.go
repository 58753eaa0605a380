// Package sim provides the core discrete-event simulation engine: a
// virtual-time scheduler, priority-partitioned queues with five service
// disciplines, a preemptible server, an arrival source, a load balancer,
// and a measurement spy that derives loss/waiting/slowdown statistics.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go: Customer identity, lifecycle, and event log
//   - scheduler.go: the virtual-time event list (register/cancel/advance)
//   - queue.go: priority-partitioned buffers and service disciplines
//   - server.go: the one-in-service-slot station and its preemption hook
//   - spy.go: per-customer statistics derivation
//
// # Architecture
//
// Components are wired together by an experiment driver (see the
// experiments package) as plain Go values holding function-valued
// callbacks captured at wire-up time. The scheduler is the only component
// that holds continuations across virtual time; every other component
// call is synchronous. This keeps the callback graph acyclic even though
// "A delivers to B" edges can themselves form cycles (e.g. a server
// delivering back into the queue that feeds it).
//
// sim/trace records human-readable event traces independently of this
// package for debugging; it has no dependency on sim.
package sim
