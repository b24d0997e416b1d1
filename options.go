package montecarlo

import (
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Option customizes a run.
type Option func(*options)

type options struct {
	sampler      Sampler
	backend      Backend
	coordination Coordination
	logger       logrus.FieldLogger
	observer     func(batch, global Accumulator)
	entropy      *rand.Rand
}

func newOptions(opts []Option) options {
	o := options{
		sampler:      Uniform,
		backend:      Pool(),
		coordination: Mutex,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}

	return o
}

// WithSampler sets the quantity being estimated. The default is [Uniform].
func WithSampler(s Sampler) Option {
	return func(o *options) {
		o.sampler = s
	}
}

// WithBackend sets the execution backend. The default is [Pool].
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithCoordination sets the merge protocol. The default is [Mutex].
func WithCoordination(c Coordination) Option {
	return func(o *options) {
		o.coordination = c
	}
}

// WithLogger sets the logger for worker lifecycle and run events. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver registers a function that is called after every merge
// with the merged batch and the global accumulator after the merge.
// Calls are serialized, but they happen while other workers wait to merge, so f should be fast.
func WithObserver(f func(batch, global Accumulator)) Option {
	return func(o *options) {
		o.observer = f
	}
}

// WithEntropy sets the master entropy source used to seed the worker streams.
// It overrides [Config].Seed. The source is used only before the workers start.
func WithEntropy(r *rand.Rand) Option {
	return func(o *options) {
		o.entropy = r
	}
}
