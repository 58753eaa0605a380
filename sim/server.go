package sim

// Server holds at most one customer in service at a time, pulling its next
// customer from exactly one upstream queue and handing finished customers
// to an exit sink. It is the only component that registers departure jobs
// with the Scheduler, and the only consumer that installs a PreemptHook.
type Server struct {
	name            string
	scheduler       *Scheduler
	requestUpstream func(CustomerRequest)
	exitCustomer    CustomerRequest

	current      *Customer
	departureJob JobID
	hasDeparture bool
}

// NewServer constructs a Server. requestUpstream is typically an upstream
// Queue's RequestOneCustomer method.
func NewServer(name string, scheduler *Scheduler, requestUpstream func(CustomerRequest), exitCustomer CustomerRequest) *Server {
	return &Server{
		name:            name,
		scheduler:       scheduler,
		requestUpstream: requestUpstream,
		exitCustomer:    exitCustomer,
	}
}

// Name returns the server's display name, used in event logs.
func (s *Server) Name() string { return s.name }

// Busy reports whether the server currently holds a customer.
func (s *Server) Busy() bool { return s.current != nil }

// Start requests the server's first customer from its upstream queue.
func (s *Server) Start() {
	s.requestUpstream(s.onDelivered)
}

func (s *Server) onDelivered(c *Customer) {
	now := s.scheduler.Time()
	dep := now + c.ServiceTime
	s.current = c
	s.departureJob = s.scheduler.RegisterJob(dep, s.fireDeparture)
	s.hasDeparture = true
}

func (s *Server) fireDeparture() {
	c := s.current
	now := s.scheduler.Time()

	c.Serviced = true
	c.DepartureTime = now
	c.AddEvent(Exited, PlaceServer, s.name, now)

	s.current = nil
	s.hasDeparture = false

	s.exitCustomer(c)
	s.requestUpstream(s.onDelivered)
}

// PreemptHook is installed on the server's upstream PRIO_P queue. See spec
// section 4.4: a strictly-higher-priority arrival displaces the in-service
// customer, whose residual service time is preserved and who is handed
// back to the queue for re-enqueue at the head of its bucket.
func (s *Server) PreemptHook(incoming *Customer) *Customer {
	if !s.Busy() || incoming.Priority >= s.current.Priority {
		return incoming
	}

	now := s.scheduler.Time()
	oldDep := s.scheduler.RemoveJob(s.departureJob)
	s.hasDeparture = false

	displaced := s.current
	displaced.ServiceTime = oldDep - now

	// The displaced customer's tentative Exited(Queue,...) event (appended
	// when it was originally selected out of the queue to enter service)
	// does not correspond to a real exit this time around: it is going
	// straight back into the queue, not leaving the system.
	if n := len(displaced.Events); n > 0 && displaced.Events[n-1].Kind == Exited && displaced.Events[n-1].Place == PlaceQueue {
		displaced.Events = displaced.Events[:n-1]
	}

	s.current = nil
	s.onDelivered(incoming)

	return displaced
}
