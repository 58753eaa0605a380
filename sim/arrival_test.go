package sim

import "testing"

type sequenceInterarrival struct {
	values []float64
	next   int
}

func (s *sequenceInterarrival) Sample() float64 {
	v := s.values[s.next]
	s.next++
	return v
}

func TestArrivalSource_DeliversInRegistrationOrder(t *testing.T) {
	sched := NewScheduler()
	gen := &sequenceInterarrival{values: []float64{1, 1, 1}}
	src := NewArrivalSource("Arrivals", sched, gen, nil)

	var order []string
	src.Register(func(c *Customer) { order = append(order, "first") })
	src.Register(func(c *Customer) { order = append(order, "second") })

	src.Start()
	sched.AdvanceTime()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v, want [first second]", order)
	}
}

func TestArrivalSource_MonotonicIDsAndDefaultPriority(t *testing.T) {
	sched := NewScheduler()
	gen := &sequenceInterarrival{values: []float64{1, 1, 1}}
	src := NewArrivalSource("Arrivals", sched, gen, nil)

	var got []*Customer
	src.Register(func(c *Customer) { got = append(got, c) })

	src.Start()
	sched.AdvanceTime()
	sched.AdvanceTime()

	if len(got) != 2 {
		t.Fatalf("got %d customers, want 2", len(got))
	}
	if got[0].ID != 0 || got[1].ID != 1 {
		t.Fatalf("ids = %d,%d, want 0,1", got[0].ID, got[1].ID)
	}
	if got[0].Priority != DefaultPriority || got[1].Priority != DefaultPriority {
		t.Fatal("nil priority sampler should yield DefaultPriority")
	}
}

func TestArrivalSource_ScheduleIsInterarrivalCumulative(t *testing.T) {
	sched := NewScheduler()
	gen := &sequenceInterarrival{values: []float64{2, 3, 1}}
	src := NewArrivalSource("Arrivals", sched, gen, nil)
	src.Register(func(*Customer) {})

	src.Start()
	sched.AdvanceTime()
	if sched.Time() != 2 {
		t.Fatalf("Time() = %g, want 2", sched.Time())
	}
	sched.AdvanceTime()
	if sched.Time() != 5 {
		t.Fatalf("Time() = %g, want 5 (2 + 3)", sched.Time())
	}
}

func TestUniformPriority_RangeBound(t *testing.T) {
	gen := NewUniformPriority(1, 4, 42)
	for i := 0; i < 10000; i++ {
		v := gen.Sample()
		if v < 1 || v > 4 {
			t.Fatalf("Sample() = %d, want in [1,4]", v)
		}
	}
}
