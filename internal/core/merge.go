package core

import "sync"

// MergeAll folds every accumulator received from in using up to n goroutines.
// Each goroutine folds whatever share of the input it receives into a partial,
// and the partials are merged once the input is closed. Merging is associative and
// commutative, so the result does not depend on how the input is split, up to rounding.
func MergeAll(in <-chan Accumulator, n int) Accumulator {
	if n <= 1 {
		return fold(in)
	}

	partials := make(chan Accumulator, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials <- fold(in)
		}()
	}

	wg.Wait()
	close(partials)

	return fold(partials)
}

func fold(in <-chan Accumulator) Accumulator {
	var acc Accumulator
	for a := range in {
		acc = acc.Merge(a)
	}
	return acc
}
