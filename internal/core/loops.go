package core

import (
	"sync"
)

// Spawn calls f(0), ..., f(n-1), each on its own goroutine.
// If done channel is not nil, it will be closed after all calls return.
func Spawn[B any](n int, done chan<- B, f func(i int)) {
	if n == 1 {
		go func() {
			if done != nil {
				defer close(done)
			}
			f(0)
		}()
		return
	}

	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f(i)
		}(i)
	}

	if done != nil {
		go func() {
			wg.Wait()
			close(done)
		}()
	}
}

// SpawnAndWait is a blocking version of Spawn.
func SpawnAndWait(n int, f func(i int)) {
	done := make(chan struct{})
	Spawn(n, done, f)
	<-done
}
