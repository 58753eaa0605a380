// Package experiments wires sim's components into the three study
// drivers from the original tool (M/M/1/K, CPU+IO web server, M/G/k) and
// runs each across replicate seeds, aggregating per-replicate scalars with
// sim.StatsAggregator.
package experiments

import (
	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"github.com/JeremiahGelb/A-PLUS-Q/sim/trace"
)

// RunResult captures one replicate's final measurements, read out of a
// Spy once its termination condition is reached.
type RunResult struct {
	LossRates    map[string]map[uint32]float64
	WaitingTimes map[string]map[uint32]float64
	SystemTime   float64
	ServiceTime  float64
	EndTime      float64
	Trace        *trace.SimulationTrace // nil unless a Config.Tracer was supplied
}

func collectResult(spy *sim.Spy, endTime float64, tracer *trace.SimulationTrace) RunResult {
	return RunResult{
		LossRates:    spy.CustomerLossRates(),
		WaitingTimes: spy.AverageWaitingTimes(),
		SystemTime:   spy.AverageSystemTime(),
		ServiceTime:  spy.AverageServiceTime(),
		EndTime:      endTime,
		Trace:        tracer,
	}
}

// Aggregate accumulates RunResults across replicates into per-metric
// StatsAggregators, grounded in original_source/src/proj_2.cpp's
// run_project_2 (which pushes each replicate's scalar into a
// std::vector<float> per queue/priority before rendering a confidence
// interval string).
type Aggregate struct {
	LossRates    map[string]map[uint32]*sim.StatsAggregator
	WaitingTimes map[string]map[uint32]*sim.StatsAggregator
	SystemTime   *sim.StatsAggregator
	ServiceTime  *sim.StatsAggregator
	EndTime      *sim.StatsAggregator
}

// NewAggregate creates an empty Aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{
		LossRates:    make(map[string]map[uint32]*sim.StatsAggregator),
		WaitingTimes: make(map[string]map[uint32]*sim.StatsAggregator),
		SystemTime:   sim.NewStatsAggregator(),
		ServiceTime:  sim.NewStatsAggregator(),
		EndTime:      sim.NewStatsAggregator(),
	}
}

// Add folds one replicate's result into the aggregate.
func (a *Aggregate) Add(r RunResult) {
	addInto(a.LossRates, r.LossRates)
	addInto(a.WaitingTimes, r.WaitingTimes)
	a.SystemTime.Add(r.SystemTime)
	a.ServiceTime.Add(r.ServiceTime)
	a.EndTime.Add(r.EndTime)
}

func addInto(dst map[string]map[uint32]*sim.StatsAggregator, src map[string]map[uint32]float64) {
	for name, byPriority := range src {
		if dst[name] == nil {
			dst[name] = make(map[uint32]*sim.StatsAggregator)
		}
		for priority, value := range byPriority {
			if dst[name][priority] == nil {
				dst[name][priority] = sim.NewStatsAggregator()
			}
			dst[name][priority].Add(value)
		}
	}
}

// RunReplicates calls one(seed) runs times, folding each result into a
// fresh Aggregate. The i-th replicate (counting from 0) gets seed
// i*seedStride, in the role of the original tool's SEED_OFFSET constant.
func RunReplicates(runs int, seedStride int64, one func(seed int64) RunResult) *Aggregate {
	agg := NewAggregate()
	for i := 0; i < runs; i++ {
		agg.Add(one(int64(i) * seedStride))
	}
	return agg
}
