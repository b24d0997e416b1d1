package montecarlo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/destel/montecarlo/internal/core"
)

// Backend runs n units of work in parallel and waits for all of them.
// The worker index passed to work is in [0, n), and each index is used exactly once.
// Run returns the first error returned by any unit. The context passed to the units is
// canceled as soon as one of them fails. String returns the name accepted by [ParseBackend].
type Backend interface {
	Run(ctx context.Context, n int, work func(ctx context.Context, worker int) error) error
	fmt.Stringer
}

// Pool returns a backend that runs the units on an errgroup of goroutines.
func Pool() Backend {
	return poolBackend{}
}

type poolBackend struct{}

func (poolBackend) Run(ctx context.Context, n int, work func(ctx context.Context, worker int) error) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return work(ctx, i)
		})
	}

	return g.Wait()
}

func (poolBackend) String() string {
	return "pool"
}

// Spawn returns a backend that starts one plain goroutine per unit.
func Spawn() Backend {
	return spawnBackend{}
}

type spawnBackend struct{}

func (spawnBackend) Run(ctx context.Context, n int, work func(ctx context.Context, worker int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var retErr error
	var once sync.Once

	core.SpawnAndWait(n, func(i int) {
		if err := work(ctx, i); err != nil {
			once.Do(func() {
				retErr = err
				cancel()
			})
		}
	})

	return retErr
}

func (spawnBackend) String() string {
	return "spawn"
}

// ParseBackend returns the backend with the given name: "pool" or "spawn".
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "pool", "":
		return Pool(), nil
	case "spawn":
		return Spawn(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// Coordination selects how batches are merged into the global accumulator.
type Coordination int

const (
	// Mutex merges under a lock held by the merging worker.
	Mutex Coordination = iota
	// Channel sends batches to a single aggregating goroutine.
	Channel
)

func (c Coordination) String() string {
	switch c {
	case Mutex:
		return "mutex"
	case Channel:
		return "channel"
	default:
		return fmt.Sprintf("Coordination(%d)", int(c))
	}
}

// ParseCoordination returns the coordination protocol with the given name: "mutex" or "channel".
func ParseCoordination(name string) (Coordination, error) {
	switch strings.ToLower(name) {
	case "mutex", "":
		return Mutex, nil
	case "channel":
		return Channel, nil
	default:
		return 0, fmt.Errorf("unknown coordination %q", name)
	}
}

func (c Coordination) coordinator(cfg Config, observe core.Observer) core.Coordinator {
	if c == Channel {
		return core.NewAggregator(cfg.RelativeTolerance, cfg.MaxTrials, observe)
	}
	return core.NewGlobal(cfg.RelativeTolerance, cfg.MaxTrials, observe)
}
