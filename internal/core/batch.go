package core

// RunBatch draws n samples and reduces them to a fresh accumulator.
// The sums are kept in float64 locals so that the hot loop touches no shared memory.
func RunBatch(n int, draw func() float64) Accumulator {
	var sumX, sumX2 float64
	for i := 0; i < n; i++ {
		x := draw()
		sumX += x
		sumX2 += x * x
	}

	return Accumulator{SumX: sumX, SumX2: sumX2, N: int64(n)}
}
