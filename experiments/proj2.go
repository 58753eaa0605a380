package experiments

import (
	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"github.com/JeremiahGelb/A-PLUS-Q/sim/trace"
)

// Proj2Mode selects between project 2's two topologies, spec.md §6's
// `L∈{0,1}=MM1/CPU`.
type Proj2Mode int

const (
	Proj2MM1 Proj2Mode = iota
	Proj2CPU
)

// Proj2CpuMu and Proj2IoMu are the fixed service rates the original tool
// hard-codes for the CPU+IO web-server topology.
const (
	Proj2CpuMu = 1.0
	Proj2IoMu  = 0.5
)

const proj2TransientPeriod = 1000

// Proj2Config holds the project 2 study parameters from spec.md §6's
// `--proj2 λ Kcpu Kio C L M` surface, grounded in
// original_source/src/proj_2.cpp.
type Proj2Config struct {
	Lambda           float64
	CpuQueueCapacity int
	IoQueueCapacity  int
	CustomersToServe int
	Mode             Proj2Mode
	Discipline       sim.Discipline
	Tracer           *trace.SimulationTrace // optional; enabled by --debug
}

// RunProj2 runs a single project 2 replicate.
func RunProj2(cfg Proj2Config, seed int64) RunResult {
	switch cfg.Mode {
	case Proj2MM1:
		return runProj2MM1K(cfg, seed)
	default:
		return runProj2WebServer(cfg, seed)
	}
}

func runProj2MM1K(cfg Proj2Config, seed int64) RunResult {
	key := sim.NewSimulationKey(seed)
	sched := sim.NewScheduler()

	const queueName = "Queue"
	spy := sim.NewSpy(0, []string{queueName}, proj2TransientPeriod, nil)
	spy.SetTracer(cfg.Tracer)
	exitCustomer := func(c *sim.Customer) { spy.OnExiting(c) }

	var minPriority, maxPriority uint32
	var priority sim.PrioritySampler
	switch cfg.Discipline {
	case sim.PrioNP, sim.PrioP:
		minPriority, maxPriority = 1, 4
		priority = sim.NewUniformPriority(minPriority, maxPriority, sim.SubsystemSeed(key, "priority"))
	}

	serviceGen := sim.NewExponential(Proj2CpuMu, sim.SubsystemSeed(key, "service"))
	queue := sim.NewQueue(cfg.CpuQueueCapacity, exitCustomer, serviceGen, sched.Time, cfg.Discipline, queueName, minPriority, maxPriority)

	arrivalGen := sim.NewExponential(cfg.Lambda, sim.SubsystemSeed(key, "arrivals"))
	arrivals := sim.NewArrivalSource("Arrivals", sched, arrivalGen, priority)
	arrivals.Register(func(c *sim.Customer) { spy.OnEntering(c) })
	arrivals.Register(queue.AcceptCustomer)

	server := sim.NewServer("Server", sched, queue.RequestOneCustomer, exitCustomer)
	if cfg.Discipline == sim.PrioP {
		queue.RegisterForPreempts(server.PreemptHook)
	}

	server.Start()
	arrivals.Start()

	for spy.TotalServiced() < cfg.CustomersToServe {
		sched.AdvanceTime()
	}

	return collectResult(spy, sched.Time(), cfg.Tracer)
}

func runProj2WebServer(cfg Proj2Config, seed int64) RunResult {
	key := sim.NewSimulationKey(seed)
	sched := sim.NewScheduler()

	const (
		cpuQueueName = "CPU_QUEUE"
		ioQueueName1 = "IO_QUEUE1"
		ioQueueName2 = "IO_QUEUE2"
		ioQueueName3 = "IO_QUEUE3"
	)

	spy := sim.NewSpy(0, []string{cpuQueueName, ioQueueName1, ioQueueName2, ioQueueName3}, proj2TransientPeriod, nil)
	spy.SetTracer(cfg.Tracer)
	exitCustomer := func(c *sim.Customer) { spy.OnExiting(c) }

	cpuQueue := sim.NewQueue(cfg.CpuQueueCapacity, exitCustomer, sim.NewExponential(Proj2CpuMu, sim.SubsystemSeed(key, "cpu_service")), sched.Time, sim.FCFS, cpuQueueName, sim.DefaultPriority, sim.DefaultPriority)
	ioQueue1 := sim.NewQueue(cfg.IoQueueCapacity, exitCustomer, sim.NewExponential(Proj2IoMu, sim.SubsystemSeed(key, "io_service_1")), sched.Time, sim.FCFS, ioQueueName1, sim.DefaultPriority, sim.DefaultPriority)
	ioQueue2 := sim.NewQueue(cfg.IoQueueCapacity, exitCustomer, sim.NewExponential(Proj2IoMu, sim.SubsystemSeed(key, "io_service_2")), sched.Time, sim.FCFS, ioQueueName2, sim.DefaultPriority, sim.DefaultPriority)
	ioQueue3 := sim.NewQueue(cfg.IoQueueCapacity, exitCustomer, sim.NewExponential(Proj2IoMu, sim.SubsystemSeed(key, "io_service_3")), sched.Time, sim.FCFS, ioQueueName3, sim.DefaultPriority, sim.DefaultPriority)

	arrivalGen := sim.NewExponential(cfg.Lambda, sim.SubsystemSeed(key, "arrivals"))
	arrivals := sim.NewArrivalSource("Arrivals", sched, arrivalGen, nil)
	arrivals.Register(func(c *sim.Customer) { spy.OnEntering(c) })
	arrivals.Register(cpuQueue.AcceptCustomer)

	targets := []sim.RandomLoadBalancerTarget{
		{Sink: ioQueue1.AcceptCustomer, Upper: 0.1},
		{Sink: ioQueue2.AcceptCustomer, Upper: 0.2},
		{Sink: ioQueue3.AcceptCustomer, Upper: 0.3},
		{Sink: exitCustomer, Upper: 1.0},
	}
	balancer := sim.NewRandomLoadBalancer(targets, sim.SubsystemSeed(key, "load_balancer"))

	cpuServer := sim.NewServer("CPU_SERVER", sched, cpuQueue.RequestOneCustomer, balancer.Route)
	ioServer1 := sim.NewServer("IO_SERVER_1", sched, ioQueue1.RequestOneCustomer, cpuQueue.AcceptCustomer)
	ioServer2 := sim.NewServer("IO_SERVER_2", sched, ioQueue2.RequestOneCustomer, cpuQueue.AcceptCustomer)
	ioServer3 := sim.NewServer("IO_SERVER_3", sched, ioQueue3.RequestOneCustomer, cpuQueue.AcceptCustomer)

	cpuServer.Start()
	ioServer1.Start()
	ioServer2.Start()
	ioServer3.Start()
	arrivals.Start()

	for spy.TotalServiced() < cfg.CustomersToServe {
		sched.AdvanceTime()
	}

	return collectResult(spy, sched.Time(), cfg.Tracer)
}
