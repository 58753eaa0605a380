package sim

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible replicate. Two
// simulations run with the same SimulationKey and configuration must
// produce bit-for-bit identical statistics (spec's "Deterministic replay"
// testable property).
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a replicate seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemSeed derives a stream-isolated seed for a named subsystem from
// a replicate key, generalizing the teacher's PartitionedRNG derivation
// (masterSeed XOR fnv1a64(name)) so that a single replicate seed can drive
// as many independent streams (arrivals, per-queue service times, the
// priority generator, the load balancer...) as an experiment wires up,
// without the hand-picked magic offsets the original tool used
// (original_source/src/proj_1.cpp's "1234 + SEED_OFFSET").
func SubsystemSeed(key SimulationKey, name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(key) ^ int64(h.Sum64())
}

// Exponential samples from Exp(lambda) by scaling a standard exponential
// variate. It never returns 0.
type Exponential struct {
	lambda float64
	rng    *rand.Rand
}

// NewExponential creates an Exponential(lambda) generator seeded
// independently of any other stream.
func NewExponential(lambda float64, seed int64) *Exponential {
	return &Exponential{lambda: lambda, rng: rand.New(rand.NewSource(seed))}
}

// Sample draws the next value. Uses math/rand's ExpFloat64, a ziggurat
// sampler whose results lie in (0, +MaxFloat64], so it is never zero.
func (e *Exponential) Sample() float64 {
	return e.rng.ExpFloat64() / e.lambda
}

// Uniform01 samples from the open interval (0, 1): never exactly 0.0 or 1.0.
type Uniform01 struct {
	rng *rand.Rand
}

// NewUniform01 creates a Uniform01 generator.
func NewUniform01(seed int64) *Uniform01 {
	return &Uniform01{rng: rand.New(rand.NewSource(seed))}
}

// Sample draws the next value, resampling away from the closed endpoints
// math/rand's Float64 can return 0 at (Float64 is [0,1); 1 is impossible,
// but 0 is, so only the low endpoint needs guarding).
func (u *Uniform01) Sample() float64 {
	v := u.rng.Float64()
	for v == 0 {
		v = u.rng.Float64()
	}
	return v
}

// UniformPriority samples an integer priority uniformly from [min, max],
// grounded in the original tool's UniformPriorityGenerator: draw a Uniform01
// variate and scale it across the inclusive integer range, clamping the
// high edge down to max.
type UniformPriority struct {
	min, max uint32
	u        *Uniform01
}

// NewUniformPriority creates a UniformPriority generator over [min, max].
func NewUniformPriority(min, max uint32, seed int64) *UniformPriority {
	return &UniformPriority{min: min, max: max, u: NewUniform01(seed)}
}

// Sample draws the next priority in [min, max].
func (p *UniformPriority) Sample() uint32 {
	span := float64(p.max-p.min) + 1
	v := p.min + uint32(span*p.u.Sample())
	if v > p.max {
		v = p.max
	}
	return v
}

// BoundedPareto samples from a bounded Pareto distribution on [L, H] with
// shape alpha, via inverse-CDF.
type BoundedPareto struct {
	low, high, alpha float64
	rng              *rand.Rand
}

// NewBoundedPareto creates a BoundedPareto(low, high, alpha) generator.
func NewBoundedPareto(low, high, alpha float64, seed int64) *BoundedPareto {
	return &BoundedPareto{low: low, high: high, alpha: alpha, rng: rand.New(rand.NewSource(seed))}
}

// Sample draws the next value in (low, high].
func (b *BoundedPareto) Sample() float64 {
	// u is in (0, 1], which the inverse CDF maps onto (low, high].
	u := 1 - b.rng.Float64()
	return b.percentileToValue(u)
}

// PercentileToValue returns the p-th percentile (p in [0,1]) of the
// configured bounded Pareto distribution; monotonically non-decreasing in p.
func (b *BoundedPareto) PercentileToValue(p float64) float64 {
	return b.percentileToValue(p)
}

// percentileToValue implements the bounded-Pareto inverse CDF:
//
//	F^-1(p) = ( -(p*H^a - p*L^a - H^a) / (H^a * L^a) )^(-1/a)
//
// the standard inverse-CDF form for a Pareto distribution truncated to
// [L, H] (https://en.wikipedia.org/wiki/Pareto_distribution#Bounded_Pareto_distribution).
func (b *BoundedPareto) percentileToValue(p float64) float64 {
	la := math.Pow(b.low, b.alpha)
	ha := math.Pow(b.high, b.alpha)
	numerator := -(p*ha - p*la - ha)
	denominator := ha * la
	return math.Pow(numerator/denominator, -1/b.alpha)
}
