package sim

import "testing"

type constantSampler struct{ v float64 }

func (c constantSampler) Sample() float64 { return c.v }

func TestQueue_FCFS_Basic(t *testing.T) {
	// spec scenario 2: FCFS queue, no consumer parked until after two
	// admissions; delivery order must match arrival order.
	var now float64
	var delivered []uint32

	q := NewQueue(10, func(*Customer) {}, constantSampler{1}, func() float64 { return now }, FCFS, "Queue", DefaultPriority, DefaultPriority)

	a := NewCustomer(1, 0, DefaultPriority)
	b := NewCustomer(2, 0, DefaultPriority)
	q.AcceptCustomer(a)
	now = 1
	q.AcceptCustomer(b)

	now = 2
	q.RequestOneCustomer(func(c *Customer) { delivered = append(delivered, c.ID) })
	q.RequestOneCustomer(func(c *Customer) { delivered = append(delivered, c.ID) })

	if len(delivered) != 2 || delivered[0] != 1 || delivered[1] != 2 {
		t.Fatalf("delivered = %v, want [1 2]", delivered)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty after both deliveries")
	}
}

func TestQueue_FCFS_ConsumerParkedBeforeArrival(t *testing.T) {
	var now float64
	var delivered []uint32

	q := NewQueue(10, func(*Customer) {}, constantSampler{1}, func() float64 { return now }, FCFS, "Queue", DefaultPriority, DefaultPriority)

	q.RequestOneCustomer(func(c *Customer) { delivered = append(delivered, c.ID) })
	if len(delivered) != 0 {
		t.Fatal("no customer available yet: consumer should still be parked")
	}

	q.AcceptCustomer(NewCustomer(5, now, DefaultPriority))
	if len(delivered) != 1 || delivered[0] != 5 {
		t.Fatalf("delivered = %v, want [5]", delivered)
	}
}

func TestQueue_SJF_Delivery(t *testing.T) {
	// spec scenario 3: shortest job served first regardless of arrival order.
	var now float64
	var delivered []uint32

	samples := map[uint32]float64{1: 5, 2: 1, 3: 3}
	sampler := &sequencedSampler{order: []uint32{1, 2, 3}, samples: samples}

	q := NewQueue(10, func(*Customer) {}, sampler, func() float64 { return now }, SJFNP, "Queue", DefaultPriority, DefaultPriority)

	q.AcceptCustomer(NewCustomer(1, now, DefaultPriority))
	q.AcceptCustomer(NewCustomer(2, now, DefaultPriority))
	q.AcceptCustomer(NewCustomer(3, now, DefaultPriority))

	for i := 0; i < 3; i++ {
		q.RequestOneCustomer(func(c *Customer) { delivered = append(delivered, c.ID) })
	}

	want := []uint32{2, 3, 1}
	for i := range want {
		if delivered[i] != want[i] {
			t.Fatalf("delivered = %v, want %v", delivered, want)
		}
	}
}

// sequencedSampler returns a fixed service time per admission order,
// looked up by the customer id assigned at that position.
type sequencedSampler struct {
	order   []uint32
	samples map[uint32]float64
	next    int
}

func (s *sequencedSampler) Sample() float64 {
	id := s.order[s.next]
	s.next++
	return s.samples[id]
}

func TestQueue_PrioNP_CapacityAndDrops(t *testing.T) {
	// spec scenario 4: capacity 12 split across 4 priority classes (3
	// each); a 4th admission into a full class is dropped, others unaffected.
	var now float64
	var dropped []uint32

	exitSink := func(c *Customer) {
		if !c.Serviced {
			dropped = append(dropped, c.ID)
		}
	}

	q := NewQueue(12, exitSink, constantSampler{1}, func() float64 { return now }, PrioNP, "Queue", 1, 4)

	id := uint32(1)
	for priority := uint32(1); priority <= 4; priority++ {
		for i := 0; i < 3; i++ {
			q.AcceptCustomer(NewCustomer(id, now, priority))
			id++
		}
	}
	if q.Size() != 12 {
		t.Fatalf("Size() = %d, want 12", q.Size())
	}

	overflow := NewCustomer(id, now, 2)
	q.AcceptCustomer(overflow)
	if len(dropped) != 1 || dropped[0] != overflow.ID {
		t.Fatalf("dropped = %v, want [%d]", dropped, overflow.ID)
	}
	if q.Size() != 12 {
		t.Fatalf("Size() after overflow = %d, want 12 (unchanged)", q.Size())
	}

	var delivered uint32
	q.RequestOneCustomer(func(c *Customer) { delivered = c.ID })
	if delivered != 1 {
		t.Fatalf("PRIO_NP must deliver from the lowest-numbered non-empty bucket first: got id %d, want 1", delivered)
	}
}

func TestQueue_ConstructorRejectsUnevenCapacitySplit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewQueue with max_size not divisible by priority count: expected panic")
		}
	}()
	NewQueue(10, func(*Customer) {}, constantSampler{1}, func() float64 { return 0 }, PrioNP, "Queue", 1, 3)
}

func TestQueue_PrioP_PreemptsWhenEmptyAndNoConsumerParked(t *testing.T) {
	var now float64
	var hookCalls int

	q := NewQueue(8, func(*Customer) {}, constantSampler{1}, func() float64 { return now }, PrioP, "Queue", 1, 2)

	inService := NewCustomer(100, 0, 2)
	inService.ServiceTime = 9
	q.RegisterForPreempts(func(incoming *Customer) *Customer {
		hookCalls++
		return inService // swap succeeds: displaced customer returned
	})

	higher := NewCustomer(1, now, 1)
	q.AcceptCustomer(higher)

	if hookCalls != 1 {
		t.Fatalf("preempt hook called %d times, want 1", hookCalls)
	}
	// the incoming customer never entered a bucket: it went straight to
	// the server via the hook.
	if q.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (only the displaced customer)", q.Size())
	}

	var delivered uint32
	q.RequestOneCustomer(func(c *Customer) { delivered = c.ID })
	if delivered != inService.ID {
		t.Fatalf("delivered = %d, want displaced customer %d back at head of line", delivered, inService.ID)
	}
}

func TestQueue_PrioP_NoPreemptWhenQueueNonEmpty(t *testing.T) {
	var now float64
	hookCalls := 0

	q := NewQueue(8, func(*Customer) {}, constantSampler{1}, func() float64 { return now }, PrioP, "Queue", 1, 2)
	q.RegisterForPreempts(func(incoming *Customer) *Customer {
		hookCalls++
		return incoming
	})

	q.AcceptCustomer(NewCustomer(1, now, 2))
	q.AcceptCustomer(NewCustomer(2, now, 1))

	// only the first admission (empty queue, no parked consumer) reaches the
	// hook; the second finds the queue non-empty and must not.
	if hookCalls != 1 {
		t.Fatalf("preempt hook called %d times, want 1 (first admission only, none on the non-empty queue)", hookCalls)
	}
	if q.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", q.Size())
	}
}

func TestQueue_PrioP_RejectedSwapEnqueuesNormally(t *testing.T) {
	var now float64

	q := NewQueue(8, func(*Customer) {}, constantSampler{1}, func() float64 { return now }, PrioP, "Queue", 1, 2)
	q.RegisterForPreempts(func(incoming *Customer) *Customer { return incoming })

	c := NewCustomer(1, now, 1)
	q.AcceptCustomer(c)

	if q.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", q.Size())
	}
	var delivered uint32
	q.RequestOneCustomer(func(got *Customer) { delivered = got.ID })
	if delivered != 1 {
		t.Fatalf("delivered = %d, want 1", delivered)
	}
}
