package sim

import "fmt"

// Discipline selects the service discipline a Queue uses to order and
// select customers. Closed-world: exactly these five exist (spec section
// 9 "Discipline as sum type" — modeled as a tagged variant with admission
// and selection strategies switched exhaustively, instead of open-class
// extension).
type Discipline int

const (
	FCFS Discipline = iota
	LCFSNP
	SJFNP
	PrioNP
	PrioP
)

func (d Discipline) String() string {
	switch d {
	case FCFS:
		return "FCFS"
	case LCFSNP:
		return "LCFS_NP"
	case SJFNP:
		return "SJF_NP"
	case PrioNP:
		return "PRIO_NP"
	case PrioP:
		return "PRIO_P"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// CustomerRequest is a callback that consumes a delivered customer —
// a queue's consumer (typically a Server), an exit sink, or an arrival
// source's downstream registrant.
type CustomerRequest func(*Customer)

// ServiceTimeSampler produces a service-time sample on queue admission.
type ServiceTimeSampler interface {
	Sample() float64
}

// PreemptHook is installed by a server on its upstream PRIO_P queue. It
// is called with an arriving customer and returns either that same
// customer (the swap was rejected — tie or lower priority) or the
// customer it displaced from service.
type PreemptHook func(incoming *Customer) *Customer

// Queue is a bounded, multi-class buffer: a per-priority ordered sequence
// of customers, an ordered list of parked consumer requests, and a
// discipline governing insertion and selection.
type Queue struct {
	name        string
	discipline  Discipline
	capacity    int // per-priority capacity; total capacity / n_priorities
	minPriority uint32
	maxPriority uint32

	buckets  map[uint32][]*Customer
	requests []CustomerRequest

	serviceTimeGen ServiceTimeSampler
	exitSink       CustomerRequest
	now            func() float64
	preemptHook    PreemptHook
}

// NewQueue constructs a Queue. maxSize must divide evenly by the number of
// priority classes (maxPriority - minPriority + 1); violating this is a
// construction-time fatal error (spec section 4.3/7). Non-priority queues
// (FCFS, LCFS_NP, SJF_NP) pass minPriority == maxPriority == DefaultPriority.
func NewQueue(
	maxSize int,
	exitSink CustomerRequest,
	serviceTimeGen ServiceTimeSampler,
	now func() float64,
	discipline Discipline,
	name string,
	minPriority, maxPriority uint32,
) *Queue {
	nPriorities := int(maxPriority-minPriority) + 1
	if maxSize%nPriorities != 0 {
		panic(fmt.Sprintf("NewQueue %q: max_size %d does not evenly divide %d priority classes", name, maxSize, nPriorities))
	}

	buckets := make(map[uint32][]*Customer, nPriorities)
	for p := minPriority; p <= maxPriority; p++ {
		buckets[p] = nil
	}

	return &Queue{
		name:           name,
		discipline:     discipline,
		capacity:       maxSize / nPriorities,
		minPriority:    minPriority,
		maxPriority:    maxPriority,
		buckets:        buckets,
		serviceTimeGen: serviceTimeGen,
		exitSink:       exitSink,
		now:            now,
	}
}

// Name returns the queue's display name, used in event logs and stats keys.
func (q *Queue) Name() string { return q.name }

// Size returns the total number of customers currently buffered.
func (q *Queue) Size() int {
	n := 0
	for _, bucket := range q.buckets {
		n += len(bucket)
	}
	return n
}

// Empty reports whether every priority bucket is empty.
func (q *Queue) Empty() bool {
	for _, bucket := range q.buckets {
		if len(bucket) > 0 {
			return false
		}
	}
	return true
}

// RegisterForPreempts installs the preempt hook a PRIO_P queue calls when
// an admission can try to kick the in-service customer.
func (q *Queue) RegisterForPreempts(hook PreemptHook) {
	q.preemptHook = hook
}

// AcceptCustomer decides admit-or-drop for c and, on admission, tries to
// satisfy any parked consumer request.
func (q *Queue) AcceptCustomer(c *Customer) {
	bucket, ok := q.buckets[c.Priority]
	if !ok {
		panic(fmt.Sprintf("Queue %q: customer priority %d outside configured range [%d,%d]", q.name, c.Priority, q.minPriority, q.maxPriority))
	}

	if len(bucket) >= q.capacity {
		q.reject(c)
		return
	}

	c.ServiceTime = q.serviceTimeGen.Sample()
	c.AddEvent(Entered, PlaceQueue, q.name, q.now())

	switch q.discipline {
	case FCFS, LCFSNP, PrioNP:
		q.buckets[c.Priority] = append(bucket, c)
	case SJFNP:
		q.insertSJF(c)
	case PrioP:
		q.insertPrioP(c)
	default:
		panic(fmt.Sprintf("Queue %q: unknown discipline %v", q.name, q.discipline))
	}

	q.handleRequests()
}

// RequestOneCustomer registers a consumer's interest. If a customer is
// available per discipline it is delivered synchronously; otherwise the
// callback is parked FIFO.
func (q *Queue) RequestOneCustomer(cb CustomerRequest) {
	q.requests = append(q.requests, cb)
	q.handleRequests()
}

func (q *Queue) reject(c *Customer) {
	now := q.now()
	c.DepartureTime = now
	c.AddEvent(DroppedBy, PlaceQueue, q.name, now)
	c.Serviced = false
	q.exitSink(c)
}

// insertSJF inserts c immediately before the first bucket element with a
// strictly smaller service time, keeping the bucket sorted by descending
// service time (shortest at the back, where selection pops from).
// Ties: the loop only breaks on a strictly smaller element, so a new
// customer is placed after all existing equal-service-time predecessors —
// the later arrival sits closer to the back and is delivered first.
func (q *Queue) insertSJF(c *Customer) {
	bucket := q.buckets[c.Priority]
	pos := len(bucket)
	for i, other := range bucket {
		if c.ServiceTime > other.ServiceTime {
			pos = i
			break
		}
	}
	grown := make([]*Customer, 0, len(bucket)+1)
	grown = append(grown, bucket[:pos]...)
	grown = append(grown, c)
	grown = append(grown, bucket[pos:]...)
	q.buckets[c.Priority] = grown
}

// insertPrioP implements the PRIO_P admission special-case from spec
// section 4.3: preempt only when the queue is empty and no consumer is
// parked (i.e. the server is busy with someone), otherwise enqueue
// normally like PRIO_NP.
func (q *Queue) insertPrioP(c *Customer) {
	if q.Empty() && len(q.requests) == 0 {
		if q.preemptHook == nil {
			panic(fmt.Sprintf("Queue %q: PRIO_P admission without a registered preempt hook", q.name))
		}

		result := q.preemptHook(c)
		if result == c {
			// rejected swap: enqueue normally at the back of its own bucket.
			q.buckets[c.Priority] = append(q.buckets[c.Priority], c)
			return
		}

		// the incoming customer went straight into service: close its queue visit.
		c.AddEvent(Exited, PlaceQueue, q.name, q.now())

		displaced := result
		bucket := append([]*Customer{displaced}, q.buckets[displaced.Priority]...)
		if len(bucket) > q.capacity {
			overflow := bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			q.buckets[displaced.Priority] = bucket
			q.reject(overflow)
		} else {
			q.buckets[displaced.Priority] = bucket
		}
		return
	}

	q.buckets[c.Priority] = append(q.buckets[c.Priority], c)
}

// handleRequests drains while both a parked consumer and a deliverable
// customer exist: pop one consumer FIFO, select one customer per
// discipline, append its Exited(Queue) event, and invoke the consumer.
func (q *Queue) handleRequests() {
	for !q.Empty() && len(q.requests) > 0 {
		req := q.requests[0]
		q.requests = q.requests[1:]

		c := q.selectAndPop()
		c.AddEvent(Exited, PlaceQueue, q.name, q.now())
		req(c)
	}
}

func (q *Queue) selectAndPop() *Customer {
	switch q.discipline {
	case FCFS:
		bucket := q.buckets[DefaultPriority]
		c := bucket[0]
		q.buckets[DefaultPriority] = bucket[1:]
		return c
	case LCFSNP, SJFNP:
		bucket := q.buckets[DefaultPriority]
		c := bucket[len(bucket)-1]
		q.buckets[DefaultPriority] = bucket[:len(bucket)-1]
		return c
	case PrioNP, PrioP:
		p := q.lowestNonEmptyPriority()
		bucket := q.buckets[p]
		c := bucket[0]
		q.buckets[p] = bucket[1:]
		return c
	default:
		panic(fmt.Sprintf("Queue %q: unknown discipline %v", q.name, q.discipline))
	}
}

func (q *Queue) lowestNonEmptyPriority() uint32 {
	for p := q.minPriority; p <= q.maxPriority; p++ {
		if len(q.buckets[p]) > 0 {
			return p
		}
	}
	panic(fmt.Sprintf("Queue %q: lowestNonEmptyPriority called while empty", q.name))
}
