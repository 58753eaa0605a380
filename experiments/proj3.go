package experiments

import (
	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"github.com/JeremiahGelb/A-PLUS-Q/sim/trace"
)

// Proj3Mode selects the service-time distribution and server count, spec.md
// §6's `M∈{0,1,2}=MM3/MG3/MG1`.
type Proj3Mode int

const (
	Proj3MM3 Proj3Mode = iota
	Proj3MG3
	Proj3MG1
)

const (
	proj3Mu                = 1.0 / 3000
	proj3ParetoLow         = 332
	proj3ParetoHigh        = 1e10
	proj3ParetoAlpha       = 1.1
	proj3TransientPeriod   = 1000
	proj3UnboundedCapacity = 1 << 30
)

// Proj3Config holds the project 3 study parameters from spec.md §6's
// `--proj3 λ C L M` surface, grounded in original_source/src/proj_3.cpp.
// Discipline is restricted to FCFS or SJF_NP, matching the original tool's
// `project3::Discipline` (`L∈{1,2}=FCFS/SJF_NP`).
type Proj3Config struct {
	Lambda           float64
	CustomersToServe int
	Discipline       sim.Discipline
	Mode             Proj3Mode
	Tracer           *trace.SimulationTrace // optional; enabled by --debug
}

// RunProj3 runs a single replicate: a single unbounded queue feeding
// either 3 servers (MM3/MG3) or 1 server (MG1).
func RunProj3(cfg Proj3Config, seed int64) RunResult {
	key := sim.NewSimulationKey(seed)
	sched := sim.NewScheduler()

	const queueName = "QUEUE"
	var percentileToValue func(float64) float64
	var serviceGen sim.ServiceTimeSampler

	switch cfg.Mode {
	case Proj3MM3:
		serviceGen = sim.NewExponential(proj3Mu, sim.SubsystemSeed(key, "service"))
	default: // MG3, MG1
		pareto := sim.NewBoundedPareto(proj3ParetoLow, proj3ParetoHigh, proj3ParetoAlpha, sim.SubsystemSeed(key, "service"))
		serviceGen = pareto
		percentileToValue = pareto.PercentileToValue
	}

	spy := sim.NewSpy(0, []string{queueName}, proj3TransientPeriod, percentileToValue)
	spy.SetTracer(cfg.Tracer)
	exitCustomer := func(c *sim.Customer) { spy.OnExiting(c) }

	queue := sim.NewQueue(proj3UnboundedCapacity, exitCustomer, serviceGen, sched.Time, cfg.Discipline, queueName, sim.DefaultPriority, sim.DefaultPriority)

	arrivalGen := sim.NewExponential(cfg.Lambda, sim.SubsystemSeed(key, "arrivals"))
	arrivals := sim.NewArrivalSource("Arrivals", sched, arrivalGen, nil)
	arrivals.Register(func(c *sim.Customer) { spy.OnEntering(c) })
	arrivals.Register(queue.AcceptCustomer)

	names := []string{"server1", "server2", "server3"}
	if cfg.Mode == Proj3MG1 {
		names = []string{"server"}
	}
	servers := make([]*sim.Server, len(names))
	for i, name := range names {
		servers[i] = sim.NewServer(name, sched, queue.RequestOneCustomer, exitCustomer)
		servers[i].Start()
	}

	arrivals.Start()

	for spy.TotalServiced() < cfg.CustomersToServe {
		sched.AdvanceTime()
	}

	return collectResult(spy, sched.Time(), cfg.Tracer)
}
