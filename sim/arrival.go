package sim

// InterarrivalSampler produces the gap until the next arrival.
type InterarrivalSampler interface {
	Sample() float64
}

// PrioritySampler assigns a priority to a freshly created customer. The
// zero value (nil) means every customer gets DefaultPriority.
type PrioritySampler interface {
	Sample() uint32
}

// ArrivalSource generates customers at interarrival-sampled instants and
// fans each one out, in registration order, to every downstream callback —
// typically the admission path of one or more queues or load balancers.
type ArrivalSource struct {
	name         string
	scheduler    *Scheduler
	interarrival InterarrivalSampler
	priority     PrioritySampler
	downstream   []CustomerRequest
	lastArrival  float64
	nextID       uint32
}

// NewArrivalSource constructs an ArrivalSource. priority may be nil, in
// which case every generated customer carries DefaultPriority.
func NewArrivalSource(name string, scheduler *Scheduler, interarrival InterarrivalSampler, priority PrioritySampler) *ArrivalSource {
	return &ArrivalSource{
		name:         name,
		scheduler:    scheduler,
		interarrival: interarrival,
		priority:     priority,
	}
}

// Register adds a downstream callback. Order of registration is the order
// in which each generated customer is delivered.
func (a *ArrivalSource) Register(cb CustomerRequest) {
	a.downstream = append(a.downstream, cb)
}

// Start schedules the first arrival.
func (a *ArrivalSource) Start() {
	a.lastArrival = a.scheduler.Time()
	a.scheduleNext()
}

func (a *ArrivalSource) scheduleNext() {
	delta := a.interarrival.Sample()
	next := a.lastArrival + delta
	a.scheduler.RegisterJob(next, a.generate)
}

func (a *ArrivalSource) generate() {
	now := a.scheduler.Time()
	a.lastArrival = now

	priority := DefaultPriority
	if a.priority != nil {
		priority = a.priority.Sample()
	}

	c := NewCustomer(a.nextID, now, priority)
	a.nextID++

	for _, cb := range a.downstream {
		cb(c)
	}

	a.scheduleNext()
}
