package core

import "math"

// Check evaluates the stopping rule against the accumulated samples.
//
// With n trials, EX = sumX/n and EX2 = sumX2/n, the variance of the mean estimator is
// estimated as (EX2-EX²)/n. The run has converged when that variance relative to EX² is below rtol².
// Otherwise it is exhausted once n exceeds maxTrials.
//
// A zero mean makes the ratio non-finite. Such a ratio never counts as converged,
// so a run with a vanishing mean only ends on the trial cap.
func Check(rtol float64, maxTrials int64, acc Accumulator) State {
	if acc.N <= 0 {
		return Running
	}

	n := float64(acc.N)
	ex := acc.SumX / n
	ex2 := acc.SumX2 / n
	varX := ex2 - ex*ex
	varEst := varX / n

	ratio := varEst / (ex * ex)
	if !math.IsNaN(ratio) && !math.IsInf(ratio, 0) && ratio < rtol*rtol {
		return Converged
	}

	if acc.N > maxTrials {
		return Exhausted
	}

	return Running
}
