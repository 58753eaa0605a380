package sim

import (
	"container/heap"
	"fmt"
)

// JobID identifies a registered scheduler event. IDs are assigned
// monotonically increasing and never reused.
type JobID uint64

// job is one entry in the scheduler's event list.
type job struct {
	id    JobID
	time  float64
	seq   uint64 // registration sequence, used as the FIFO tie-break
	thunk func()
	index int // heap slot, maintained by jobHeap
}

// jobHeap is a container/heap priority queue ordered by (time, seq), with
// an index map supporting O(log n) removal by JobID — the classic
// "removable priority queue" extension of container/heap, generalized from
// the teacher's sim/cluster/EventHeap (which orders by timestamp → event
// type priority → event ID; this scheduler has no notion of event-type
// priority, only FIFO-on-tie, so that middle level is dropped).
type jobHeap struct {
	jobs []*job
	byID map[JobID]*job
}

func newJobHeap() *jobHeap {
	h := &jobHeap{byID: make(map[JobID]*job)}
	heap.Init(h)
	return h
}

func (h *jobHeap) Len() int { return len(h.jobs) }

func (h *jobHeap) Less(i, j int) bool {
	a, b := h.jobs[i], h.jobs[j]
	if a.time != b.time {
		return a.time < b.time
	}
	return a.seq < b.seq
}

func (h *jobHeap) Swap(i, j int) {
	h.jobs[i], h.jobs[j] = h.jobs[j], h.jobs[i]
	h.jobs[i].index = i
	h.jobs[j].index = j
}

func (h *jobHeap) Push(x interface{}) {
	j := x.(*job)
	j.index = len(h.jobs)
	h.jobs = append(h.jobs, j)
	h.byID[j.id] = j
}

func (h *jobHeap) Pop() interface{} {
	old := h.jobs
	n := len(old)
	j := old[n-1]
	old[n-1] = nil
	h.jobs = old[:n-1]
	delete(h.byID, j.id)
	return j
}

func (h *jobHeap) remove(id JobID) (*job, bool) {
	j, ok := h.byID[id]
	if !ok {
		return nil, false
	}
	heap.Remove(h, j.index)
	delete(h.byID, id)
	return j, true
}

// Scheduler is the virtual-time event list: a priority-ordered job queue
// that advances a single simulated clock and dispatches callbacks in
// deterministic order, with support for cancellation (needed by server
// preemption).
//
// Not safe for concurrent use: all callers operate on a single logical
// thread, matching the cooperative single-threaded execution model of
// spec section 5.
type Scheduler struct {
	time    float64
	jobs    *jobHeap
	nextID  JobID
	nextSeq uint64
}

// NewScheduler creates a scheduler with its virtual clock at 0.
func NewScheduler() *Scheduler {
	return &Scheduler{jobs: newJobHeap()}
}

// Time returns the current virtual clock. It never decreases.
func (s *Scheduler) Time() float64 {
	return s.time
}

// RegisterJob inserts an event at startTime, returning a fresh monotonic
// JobID. Panics if startTime is in the past: that is a caller error, not
// a recoverable condition (spec section 7).
func (s *Scheduler) RegisterJob(startTime float64, thunk func()) JobID {
	if startTime < s.time {
		panic(fmt.Sprintf("RegisterJob: start time %g is before current time %g", startTime, s.time))
	}
	s.nextID++
	id := s.nextID
	s.nextSeq++
	heap.Push(s.jobs, &job{id: id, time: startTime, seq: s.nextSeq, thunk: thunk})
	return id
}

// RemoveJob cancels a registered event, returning its scheduled time so
// the caller (the server's preemption path) can compute residual service
// time. Panics if the id is unknown — removing an already-fired or
// already-removed id is a fatal caller error (spec section 5).
func (s *Scheduler) RemoveJob(id JobID) float64 {
	j, ok := s.jobs.remove(id)
	if !ok {
		panic(fmt.Sprintf("RemoveJob: unknown job id %d", id))
	}
	return j.time
}

// AdvanceTime dispatches every event whose time equals the minimum
// scheduled time, in registration order among ties. The clock is set to
// that minimum before any dispatch. Events registered during dispatch at
// the current time are NOT included in this cohort — they are snapshotted
// out and wait for the next call, per spec section 4.1's reference
// behavior. Panics if the event list is empty.
func (s *Scheduler) AdvanceTime() {
	if s.jobs.Len() == 0 {
		panic("AdvanceTime: event list is empty")
	}

	minTime := s.jobs.jobs[0].time
	s.time = minTime

	var cohort []*job
	for s.jobs.Len() > 0 && s.jobs.jobs[0].time == minTime {
		cohort = append(cohort, heap.Pop(s.jobs).(*job))
	}

	for _, j := range cohort {
		j.thunk()
	}
}

// Pending returns the number of events still registered.
func (s *Scheduler) Pending() int {
	return s.jobs.Len()
}
