package core

type mergeRequest struct {
	batch Accumulator
	reply chan<- State
}

// Aggregator is a Coordinator based on message passing.
// Workers send batches to a single goroutine that owns the accumulator,
// so merges are serialized without a lock. Each sender waits for the post-merge state.
type Aggregator struct {
	*Termination

	rtol      float64
	maxTrials int64
	observe   Observer

	requests chan mergeRequest
	stopped  chan struct{}

	// owned by the run goroutine until stopped is closed
	acc     Accumulator
	batches int64
}

func NewAggregator(rtol float64, maxTrials int64, observe Observer) *Aggregator {
	a := &Aggregator{
		Termination: NewTermination(),
		rtol:        rtol,
		maxTrials:   maxTrials,
		observe:     observe,
		requests:    make(chan mergeRequest),
		stopped:     make(chan struct{}),
	}

	go a.run()
	return a
}

func (a *Aggregator) run() {
	defer close(a.stopped)

	for req := range a.requests {
		a.acc = a.acc.Merge(req.batch)
		a.batches++

		if a.observe != nil {
			a.observe(req.batch, a.acc)
		}

		req.reply <- a.Transition(Check(a.rtol, a.maxTrials, a.acc))
	}
}

func (a *Aggregator) MergeAndCheck(batch Accumulator) State {
	reply := make(chan State, 1)
	a.requests <- mergeRequest{batch: batch, reply: reply}
	return <-reply
}

func (a *Aggregator) Close() (Accumulator, int64) {
	close(a.requests)
	<-a.stopped
	return a.acc, a.batches
}
