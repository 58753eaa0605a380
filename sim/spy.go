package sim

import (
	"maps"
	"math"
	"slices"

	"github.com/JeremiahGelb/A-PLUS-Q/sim/trace"
)

// AllQueues is the sentinel queue-name key meaning "aggregated across every
// configured queue", used in the maps CustomerLossRates and
// AverageWaitingTimes return.
const AllQueues = "ALL_QUEUES"

// AllPriorities is the sentinel priority key meaning "aggregated across
// every priority class".
const AllPriorities = math.MaxUint32

// queueStats holds the per-priority accumulators the Spy tracks for one
// named queue.
type queueStats struct {
	entrances      map[uint32]int
	uniqueVisitors map[uint32]int
	waitingTime    map[uint32]float64
	losses         map[uint32]int
}

func newQueueStats() *queueStats {
	return &queueStats{
		entrances:      make(map[uint32]int),
		uniqueVisitors: make(map[uint32]int),
		waitingTime:    make(map[uint32]float64),
		losses:         make(map[uint32]int),
	}
}

// Spy is the measurement component: it watches every customer's entry and
// exit, accumulates the statistics described by spec section 4.7, and
// derives loss rates, waiting times, service/system time means, and
// slowdown percentiles from them. Grounded in
// original_source/src/simulation_spy.h, generalized from its single-queue,
// system-wide aggregates to the full per-queue/per-priority data model the
// rest of this package needs.
type Spy struct {
	queueNames        []string
	transientPeriod   uint32
	percentileToValue func(p float64) float64
	snapshotIDs       map[uint32]bool

	inSystem map[uint32]*Customer
	perQueue map[string]*queueStats

	entered  map[uint32]int
	serviced map[uint32]int
	lost     map[uint32]int

	totalServiceTime float64
	totalSystemTime  float64
	totalWaitingTime map[uint32]float64 // per priority, summed across every queue a customer visited

	slowdownBins [100]struct {
		sum   float64
		count int
	}

	snapshots []string

	tracer *trace.SimulationTrace
}

// SetTracer attaches a debug event tracer; every subsequent customer event
// log entry flushed through OnExiting is also recorded there. Passing nil
// disables tracing. Wires the --debug CLI flag (cmd.newTracer) to this
// package's per-customer event log.
func (s *Spy) SetTracer(t *trace.SimulationTrace) {
	s.tracer = t
}

// NewSpy constructs a Spy. snapshotBase is L from spec section 4.7: the
// spy snapshots a customer's full event log text when its id is
// L, L+1, L+10, or L+11. percentileToValue may be nil, disabling slowdown
// binning.
func NewSpy(snapshotBase uint32, queueNames []string, transientPeriod uint32, percentileToValue func(p float64) float64) *Spy {
	s := &Spy{
		queueNames:        queueNames,
		transientPeriod:   transientPeriod,
		percentileToValue: percentileToValue,
		snapshotIDs: map[uint32]bool{
			snapshotBase:      true,
			snapshotBase + 1:  true,
			snapshotBase + 10: true,
			snapshotBase + 11: true,
		},
	}
	s.reset()
	return s
}

func (s *Spy) reset() {
	s.inSystem = make(map[uint32]*Customer)
	s.perQueue = make(map[string]*queueStats, len(s.queueNames))
	for _, name := range s.queueNames {
		s.perQueue[name] = newQueueStats()
	}
	s.entered = make(map[uint32]int)
	s.serviced = make(map[uint32]int)
	s.lost = make(map[uint32]int)
	s.totalServiceTime = 0
	s.totalSystemTime = 0
	s.totalWaitingTime = make(map[uint32]float64)
	for i := range s.slowdownBins {
		s.slowdownBins[i] = struct {
			sum   float64
			count int
		}{}
	}
}

// OnEntering records a customer's arrival into the system.
func (s *Spy) OnEntering(c *Customer) {
	s.entered[c.Priority]++
	s.inSystem[c.ID] = c
}

// OnExiting records a customer's final departure (serviced or dropped).
func (s *Spy) OnExiting(c *Customer) {
	delete(s.inSystem, c.ID)

	if s.snapshotIDs[c.ID] {
		s.snapshots = append(s.snapshots, c.String(true))
	}

	if s.tracer != nil {
		for _, e := range c.Events {
			s.tracer.RecordEvent(trace.EventRecord{
				CustomerID: c.ID,
				Kind:       e.Kind.String(),
				PlaceKind:  e.Place.String(),
				PlaceName:  e.PlaceName,
				Time:       e.Time,
			})
		}
	}

	if c.Serviced {
		s.recordServiced(c)
	} else {
		s.recordDropped(c)
	}

	if c.ID == s.transientPeriod-1 {
		s.reset()
	}
}

func (s *Spy) recordServiced(c *Customer) {
	s.serviced[c.Priority]++
	s.totalServiceTime += c.ServiceTime
	s.totalSystemTime += c.SystemTime()
	s.totalWaitingTime[c.Priority] += c.TotalWaitingTime()

	for _, name := range s.queueNames {
		qs := s.perQueue[name]
		n := c.Entrances(name)
		if n == 0 {
			continue
		}
		qs.entrances[c.Priority] += n
		qs.uniqueVisitors[c.Priority]++
		qs.waitingTime[c.Priority] += c.WaitingTimeAt(name)
	}

	if s.percentileToValue != nil {
		s.recordSlowdown(c)
	}
}

func (s *Spy) recordSlowdown(c *Customer) {
	bin := 99
	for k := 0; k < 100; k++ {
		threshold := s.percentileToValue(float64(k+1) * 0.01)
		if c.ServiceTime <= threshold {
			bin = k
			break
		}
	}
	s.slowdownBins[bin].sum += c.TotalWaitingTime() / c.ServiceTime
	s.slowdownBins[bin].count++
}

func (s *Spy) recordDropped(c *Customer) {
	name := c.DroppedByPlace()
	s.lost[c.Priority]++
	qs := s.perQueue[name]
	if qs == nil {
		qs = newQueueStats()
		s.perQueue[name] = qs
	}
	qs.losses[c.Priority]++
	qs.uniqueVisitors[c.Priority]++
}

// AdditionalStats returns the human-readable snapshots captured when a
// customer with id in {L, L+1, L+10, L+11} exited, supplementing the core
// spec with the original tool's debug-snapshot feature.
func (s *Spy) AdditionalStats() []string {
	return s.snapshots
}

// CustomerLossRates returns, per queue name (plus AllQueues), per priority
// (plus AllPriorities), the fraction of visiting customers who were
// dropped there.
func (s *Spy) CustomerLossRates() map[string]map[uint32]float64 {
	result := make(map[string]map[uint32]float64, len(s.perQueue)+1)

	systemLost := make(map[uint32]int)
	for p, lost := range s.lost {
		systemLost[p] = lost
	}

	for name, qs := range s.perQueue {
		rates := make(map[uint32]float64)
		var totalLoss, totalUnique int
		for p, unique := range qs.uniqueVisitors {
			loss := qs.losses[p]
			if unique > 0 {
				rates[p] = float64(loss) / float64(unique)
			}
			totalLoss += loss
			totalUnique += unique
		}
		if totalUnique > 0 {
			rates[AllPriorities] = float64(totalLoss) / float64(totalUnique)
		}
		result[name] = rates
	}

	systemRates := make(map[uint32]float64)
	var totalLost, totalEntered int
	for p, entered := range s.entered {
		lost := systemLost[p]
		if entered > 0 {
			systemRates[p] = float64(lost) / float64(entered)
		}
		totalLost += lost
		totalEntered += entered
	}
	if totalEntered > 0 {
		systemRates[AllPriorities] = float64(totalLost) / float64(totalEntered)
	}
	result[AllQueues] = systemRates

	return result
}

// AverageWaitingTimes returns, per queue name (plus AllQueues), per
// priority (plus AllPriorities), the mean time a serviced customer spent
// waiting there. Each queue's per-priority mean divides by total
// entrances (a customer who re-enters the same queue several times counts
// each entrance), matching original_source/src/test.cpp's ground truth.
// The AllQueues row is not an entrance-weighted combination of the
// per-queue means: it is the mean, across serviced customers of that
// priority, of each customer's own total waiting time summed across every
// queue they visited (original_source/src/test.cpp:1162-1164).
func (s *Spy) AverageWaitingTimes() map[string]map[uint32]float64 {
	result := make(map[string]map[uint32]float64, len(s.perQueue)+1)

	for name, qs := range s.perQueue {
		times := make(map[uint32]float64)
		var totalWait float64
		var totalEntrances int
		for _, p := range slices.Sorted(maps.Keys(qs.entrances)) {
			entrances := qs.entrances[p]
			if entrances == 0 {
				continue
			}
			times[p] = qs.waitingTime[p] / float64(entrances)
			totalWait += qs.waitingTime[p]
			totalEntrances += entrances
		}
		if totalEntrances > 0 {
			times[AllPriorities] = totalWait / float64(totalEntrances)
		}
		result[name] = times
	}

	allQueues := make(map[uint32]float64)
	var totalWait float64
	var totalServiced int
	for _, p := range slices.Sorted(maps.Keys(s.serviced)) {
		serviced := s.serviced[p]
		if serviced == 0 {
			continue
		}
		allQueues[p] = s.totalWaitingTime[p] / float64(serviced)
		totalWait += s.totalWaitingTime[p]
		totalServiced += serviced
	}
	if totalServiced > 0 {
		allQueues[AllPriorities] = totalWait / float64(totalServiced)
	}
	result[AllQueues] = allQueues

	return result
}

// AverageServiceTime returns the mean service time across all serviced
// customers.
func (s *Spy) AverageServiceTime() float64 {
	total := s.totalServiced()
	if total == 0 {
		return 0
	}
	return s.totalServiceTime / float64(total)
}

// AverageSystemTime returns the mean system time (departure - arrival)
// across all serviced customers.
func (s *Spy) AverageSystemTime() float64 {
	total := s.totalServiced()
	if total == 0 {
		return 0
	}
	return s.totalSystemTime / float64(total)
}

// TotalServiced returns the number of customers serviced since the last
// transient reset, summed across all priorities. Experiment drivers use
// this as the run's termination condition.
func (s *Spy) TotalServiced() int {
	return s.totalServiced()
}

func (s *Spy) totalServiced() int {
	total := 0
	for _, n := range s.serviced {
		total += n
	}
	return total
}

// AverageSlowdownPercentiles returns the 100-bin slowdown percentile
// array: bin k holds the mean of waiting_time/service_time across
// customers whose service time fell in that percentile band of the
// configured service-time distribution.
func (s *Spy) AverageSlowdownPercentiles() [100]float64 {
	var out [100]float64
	for k, bin := range s.slowdownBins {
		if bin.count > 0 {
			out[k] = bin.sum / float64(bin.count)
		}
	}
	return out
}
