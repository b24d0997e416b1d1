package th

import (
	"fmt"
	"strings"
	"sync"
)

// FromSlice sends all items to a new channel and closes it.
func FromSlice[A any](items []A) <-chan A {
	ch := make(chan A, len(items))
	for _, item := range items {
		ch <- item
	}
	close(ch)
	return ch
}

func DoConcurrentlyN(n int, f func(i int)) {
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f(i)
		}(i)
	}

	wg.Wait()
}

// Name generates a test name.
// Works the same way as fmt.Sprint, but adds spaces between all arguments.
func Name(args ...any) string {
	res := fmt.Sprintln(args...)
	return strings.TrimSpace(res)
}

// Constant returns a draw function that always yields c.
func Constant(c float64) func() float64 {
	return func() float64 {
		return c
	}
}

// Sequence returns a draw function that cycles through xs. It is not safe for concurrent use.
func Sequence(xs ...float64) func() float64 {
	i := 0
	return func() float64 {
		x := xs[i%len(xs)]
		i++
		return x
	}
}
