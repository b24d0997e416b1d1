package core

import "math"

// Accumulator holds the running sums of a set of samples.
// The zero value is an empty accumulator, ready to use.
type Accumulator struct {
	SumX  float64 `json:"sum_x" yaml:"sum_x"`
	SumX2 float64 `json:"sum_x2" yaml:"sum_x2"`
	N     int64   `json:"ntrials" yaml:"ntrials"`
}

// Add records one sample.
func (a *Accumulator) Add(x float64) {
	a.SumX += x
	a.SumX2 += x * x
	a.N++
}

// Merge returns the field-wise sum of a and b.
// Merging is associative and commutative up to floating point rounding.
func (a Accumulator) Merge(b Accumulator) Accumulator {
	return Accumulator{
		SumX:  a.SumX + b.SumX,
		SumX2: a.SumX2 + b.SumX2,
		N:     a.N + b.N,
	}
}

// Mean returns the sample mean. It is NaN for an empty accumulator.
func (a Accumulator) Mean() float64 {
	return a.SumX / float64(a.N)
}

// Variance returns the biased sample variance E[X²]-E[X]².
// Due to cancellation it can come out slightly negative when the true variance is close to zero.
func (a Accumulator) Variance() float64 {
	n := float64(a.N)
	ex := a.SumX / n
	return a.SumX2/n - ex*ex
}

// StdErr returns the estimated standard deviation of the mean.
// Negative variance is clamped to zero.
func (a Accumulator) StdErr() float64 {
	return math.Sqrt(math.Max(a.Variance(), 0) / float64(a.N))
}

// RelErr returns StdErr relative to the magnitude of the mean.
// It is +Inf or NaN when the mean is zero.
func (a Accumulator) RelErr() float64 {
	return a.StdErr() / math.Abs(a.Mean())
}
