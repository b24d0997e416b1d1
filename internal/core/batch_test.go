package core

import (
	"testing"

	"github.com/destel/montecarlo/internal/th"
)

func TestRunBatch(t *testing.T) {
	t.Run("sums", func(t *testing.T) {
		acc := RunBatch(4, th.Sequence(1, 2, 3, 4))
		th.ExpectValue(t, acc, Accumulator{SumX: 10, SumX2: 30, N: 4})
	})

	t.Run("constant", func(t *testing.T) {
		acc := RunBatch(1000, th.Constant(0.5))
		th.ExpectValue(t, acc, Accumulator{SumX: 500, SumX2: 250, N: 1000})
	})

	t.Run("draws exactly n samples", func(t *testing.T) {
		calls := 0
		RunBatch(37, func() float64 {
			calls++
			return 0
		})
		th.ExpectValue(t, calls, 37)
	})
}
