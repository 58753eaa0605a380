package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// zScore95 is the two-sided 95% confidence z-score, matching the constant
// original_source/src/stats.h hard-codes rather than computing from a
// distribution table.
const zScore95 = 1.960

// StatsAggregator accumulates one scalar per replicate run (a loss rate,
// a mean waiting time, ...) and reports the sample mean, the
// Bessel-corrected sample variance, and a 95% confidence interval.
type StatsAggregator struct {
	samples []float64
}

// NewStatsAggregator creates an empty aggregator.
func NewStatsAggregator() *StatsAggregator {
	return &StatsAggregator{}
}

// Add records one replicate's scalar.
func (a *StatsAggregator) Add(v float64) {
	a.samples = append(a.samples, v)
}

// N returns the number of recorded samples.
func (a *StatsAggregator) N() int {
	return len(a.samples)
}

// Mean returns the sample mean.
func (a *StatsAggregator) Mean() float64 {
	return stat.Mean(a.samples, nil)
}

// Variance returns the Bessel-corrected sample variance (divides by n-1).
func (a *StatsAggregator) Variance() float64 {
	return stat.Variance(a.samples, nil)
}

// ConfidenceIntervalHalfWidth returns the half-width of the 95% confidence
// interval around the mean: 1.960 * sqrt(variance / n).
func (a *StatsAggregator) ConfidenceIntervalHalfWidth() float64 {
	n := len(a.samples)
	if n < 2 {
		return 0
	}
	return zScore95 * math.Sqrt(a.Variance()/float64(n))
}

// String renders "mean ± half", the textual form used in the experiment
// drivers' stdout summaries.
func (a *StatsAggregator) String() string {
	return fmt.Sprintf("%g ± %g", a.Mean(), a.ConfidenceIntervalHalfWidth())
}
