package sim

import "fmt"

// RandomLoadBalancerTarget pairs a downstream sink with the upper bound of
// its cumulative-probability band.
type RandomLoadBalancerTarget struct {
	Sink  CustomerRequest
	Upper float64
}

// RandomLoadBalancer routes a customer to one of several sinks by sampling
// a uniform variate and walking an ordered list of cumulative-probability
// bands, grounded in original_source/src/random_load_balancer.h.
type RandomLoadBalancer struct {
	targets []RandomLoadBalancerTarget
	uniform *Uniform01
}

// NewRandomLoadBalancer constructs a RandomLoadBalancer. targets must have
// strictly increasing Upper values ending exactly at 1.0; violating that
// is a construction-time fatal error.
func NewRandomLoadBalancer(targets []RandomLoadBalancerTarget, seed int64) *RandomLoadBalancer {
	if len(targets) == 0 {
		panic("NewRandomLoadBalancer: no targets configured")
	}
	prev := 0.0
	for i, target := range targets {
		if target.Upper <= prev {
			panic(fmt.Sprintf("NewRandomLoadBalancer: target %d upper bound %g does not strictly increase from %g", i, target.Upper, prev))
		}
		prev = target.Upper
	}
	if targets[len(targets)-1].Upper != 1.0 {
		panic(fmt.Sprintf("NewRandomLoadBalancer: last target upper bound must be 1.0, got %g", targets[len(targets)-1].Upper))
	}

	return &RandomLoadBalancer{targets: targets, uniform: NewUniform01(seed)}
}

// Route samples a uniform variate and delivers c to the first target whose
// upper bound the sample falls strictly below.
func (r *RandomLoadBalancer) Route(c *Customer) {
	u := r.uniform.Sample()
	for _, target := range r.targets {
		if u < target.Upper {
			target.Sink(c)
			return
		}
	}
	panic(fmt.Sprintf("RandomLoadBalancer: sample %g exceeded all configured bands (last upper bound should be 1.0)", u))
}
