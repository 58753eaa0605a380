package experiments

import (
	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"github.com/JeremiahGelb/A-PLUS-Q/sim/trace"
)

// Proj1Config holds the M/M/1/K study parameters from spec.md §6's
// `--proj1 λ K C L` surface, grounded in original_source/src/proj_1.cpp.
type Proj1Config struct {
	Lambda           float64
	QueueCapacity    int
	CustomersToServe int
	SnapshotBase     uint32
	Tracer           *trace.SimulationTrace // optional; enabled by --debug
}

// Proj1Mu is the fixed service rate the original tool hard-codes for
// project 1's single FCFS queue.
const Proj1Mu = 1.0

// RunProj1 runs a single M/M/1/K replicate: one FCFS queue of capacity
// QueueCapacity feeding one server, Exponential(Lambda) arrivals and
// Exponential(Proj1Mu) service times, until CustomersToServe have been
// serviced.
func RunProj1(cfg Proj1Config, seed int64) RunResult {
	key := sim.NewSimulationKey(seed)
	sched := sim.NewScheduler()

	const queueName = "Queue"
	spy := sim.NewSpy(cfg.SnapshotBase, []string{queueName}, 0, nil)
	spy.SetTracer(cfg.Tracer)

	exitCustomer := func(c *sim.Customer) { spy.OnExiting(c) }

	serviceGen := sim.NewExponential(Proj1Mu, sim.SubsystemSeed(key, "service"))
	queue := sim.NewQueue(cfg.QueueCapacity, exitCustomer, serviceGen, sched.Time, sim.FCFS, queueName, sim.DefaultPriority, sim.DefaultPriority)

	arrivalGen := sim.NewExponential(cfg.Lambda, sim.SubsystemSeed(key, "arrivals"))
	arrivals := sim.NewArrivalSource("Arrivals", sched, arrivalGen, nil)
	arrivals.Register(func(c *sim.Customer) { spy.OnEntering(c) }) // must register first
	arrivals.Register(queue.AcceptCustomer)

	server := sim.NewServer("Server", sched, queue.RequestOneCustomer, exitCustomer)

	server.Start()
	arrivals.Start()

	for spy.TotalServiced() < cfg.CustomersToServe {
		sched.AdvanceTime()
	}

	return collectResult(spy, sched.Time(), cfg.Tracer)
}
