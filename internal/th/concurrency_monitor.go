package th

import (
	"sync"
	"time"
)

// ConcurrencyMonitor measures the maximum number of goroutines running a section at the same time.
// Each goroutine calls Inc() when it enters the section and Dec() when it leaves.
// Inc() blocks until the level has been stable for the configured window,
// so goroutines that are started together are all counted in the same peak.
type ConcurrencyMonitor struct {
	cond    *sync.Cond
	current int
	max     int

	window time.Duration

	lastChangeAt time.Time
	timer        *time.Timer
	timerFired   bool
}

func NewConcurrencyMonitor(window time.Duration) *ConcurrencyMonitor {
	c := &ConcurrencyMonitor{
		cond:   sync.NewCond(&sync.Mutex{}),
		window: window,
	}

	c.timer = time.AfterFunc(1*time.Hour, c.fire)
	return c
}

func (c *ConcurrencyMonitor) fire() {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	c.timerFired = true
	c.cond.Broadcast()
}

// touch must be called with the lock held.
func (c *ConcurrencyMonitor) touch(delta int) {
	c.lastChangeAt = time.Now()
	if !c.timerFired {
		c.timer.Reset(c.window)
	}

	c.current += delta
	if c.max < c.current {
		c.max = c.current
	}
}

func (c *ConcurrencyMonitor) Inc() {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	c.touch(1)

	for !c.timerFired && time.Since(c.lastChangeAt) < c.window {
		c.cond.Wait()
	}
}

func (c *ConcurrencyMonitor) Dec() {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	c.touch(-1)
	c.cond.Broadcast()
}

func (c *ConcurrencyMonitor) Reset() {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	c.timer.Stop()
	c.current = 0
	c.max = 0
	c.lastChangeAt = time.Time{}
	c.timerFired = false
	c.timer.Reset(1 * time.Hour)
}

func (c *ConcurrencyMonitor) Max() int {
	c.cond.L.Lock()
	defer c.cond.L.Unlock()

	return c.max
}
