package montecarlo

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/destel/montecarlo/internal/th"
)

func testConfig() Config {
	return Config{
		RelativeTolerance: 0.01,
		MaxTrials:         1_000_000,
		BatchSize:         1000,
		Workers:           4,
		Seed:              42,
	}
}

// runs f for every backend and coordination protocol
func forEachSetup(t *testing.T, f func(t *testing.T, opts ...Option)) {
	for _, b := range []Backend{Pool(), Spawn()} {
		for _, c := range []Coordination{Mutex, Channel} {
			t.Run(th.Name(b, c), func(t *testing.T) {
				f(t, WithBackend(b), WithCoordination(c))
			})
		}
	}
}

func TestEstimate(t *testing.T) {
	forEachSetup(t, func(t *testing.T, opts ...Option) {
		t.Run("uniform converges", func(t *testing.T) {
			cfg := testConfig()

			res, err := Estimate(context.Background(), cfg, opts...)
			th.ExpectNoError(t, err)
			th.ExpectValue(t, res.State, Converged)
			th.ExpectClose(t, res.Mean(), 0.5, 0.5*5*cfg.RelativeTolerance)
			th.ExpectBetween(t, res.N, int64(cfg.BatchSize), cfg.MaxTrials+int64(cfg.Workers*(cfg.BatchSize-1)))
			th.ExpectValue(t, res.N, res.Batches*int64(cfg.BatchSize))
			if res.RelErr() >= cfg.RelativeTolerance {
				t.Errorf("expected relative error below %v, got %v", cfg.RelativeTolerance, res.RelErr())
			}
		})

		t.Run("cap smaller than a batch", func(t *testing.T) {
			cfg := testConfig()
			cfg.MaxTrials = 100

			res, err := Estimate(context.Background(), cfg, opts...)
			th.ExpectNoError(t, err)
			th.ExpectValue(t, res.State, Exhausted)
			th.ExpectValue(t, res.Batches, int64(cfg.Workers))
			th.ExpectValue(t, res.N, int64(cfg.BatchSize*cfg.Workers))
		})

		t.Run("termination bound", func(t *testing.T) {
			for _, maxTrials := range []int64{1000, 4500, 20000} {
				cfg := testConfig()
				cfg.RelativeTolerance = 1e-9
				cfg.MaxTrials = maxTrials
				cfg.BatchSize = 500

				res, err := Estimate(context.Background(), cfg, opts...)
				th.ExpectNoError(t, err)
				th.ExpectValue(t, res.State, Exhausted)

				bound := (maxTrials+int64(cfg.BatchSize)-1)/int64(cfg.BatchSize) + int64(cfg.Workers)
				th.ExpectBetween(t, res.Batches, int64(cfg.Workers), bound)
				if res.N <= maxTrials {
					t.Errorf("expected more than %d trials, got %d", maxTrials, res.N)
				}
			}
		})

		t.Run("constant sample converges in one batch", func(t *testing.T) {
			cfg := testConfig()
			cfg.RelativeTolerance = 1e-12
			cfg.Workers = 1

			res, err := Estimate(context.Background(), cfg, append(opts, WithSampler(func(*Stream) float64 {
				return 0.25
			}))...)

			th.ExpectNoError(t, err)
			th.ExpectValue(t, res.State, Converged)
			th.ExpectValue(t, res.Batches, int64(1))
			th.ExpectValue(t, res.Mean(), 0.25)
			th.ExpectValue(t, res.StdErr(), 0.0)
		})

		t.Run("zero mean ends on the cap", func(t *testing.T) {
			cfg := testConfig()
			cfg.RelativeTolerance = 0.5
			cfg.MaxTrials = 10_000

			res, err := Estimate(context.Background(), cfg, append(opts, WithSampler(func(*Stream) float64 {
				return 0
			}))...)

			th.ExpectNoError(t, err)
			th.ExpectValue(t, res.State, Exhausted)
			th.ExpectValue(t, res.SumX, 0.0)
		})

		t.Run("reproducible with a single worker", func(t *testing.T) {
			cfg := testConfig()
			cfg.Workers = 1

			res1, err := Estimate(context.Background(), cfg, opts...)
			th.ExpectNoError(t, err)
			res2, err := Estimate(context.Background(), cfg, opts...)
			th.ExpectNoError(t, err)

			th.ExpectValue(t, res1.Accumulator, res2.Accumulator)
			th.ExpectValue(t, res1.Seeds[0], res2.Seeds[0])
		})

		t.Run("per-worker partials add up", func(t *testing.T) {
			cfg := testConfig()

			res, err := Estimate(context.Background(), cfg, opts...)
			th.ExpectNoError(t, err)
			th.ExpectValue(t, len(res.PerWorker), cfg.Workers)

			for i, acc := range res.PerWorker {
				if acc.N < int64(cfg.BatchSize) {
					t.Errorf("worker %d drew %d samples, less than one batch", i, acc.N)
				}
			}

			acc := Merge(th.FromSlice(res.PerWorker), cfg.Workers)
			th.ExpectValue(t, acc.N, res.N)
			th.ExpectClose(t, acc.SumX, res.SumX, 1e-9*res.SumX)
		})

		t.Run("observer sees every merge", func(t *testing.T) {
			cfg := testConfig()

			var mu sync.Mutex
			var merged int64
			var last Accumulator

			res, err := Estimate(context.Background(), cfg, append(opts, WithObserver(func(batch, global Accumulator) {
				mu.Lock()
				defer mu.Unlock()

				merged += batch.N
				last = global
			}))...)

			th.ExpectNoError(t, err)
			th.ExpectValue(t, merged, res.N)
			th.ExpectValue(t, last, res.Accumulator)
		})

		t.Run("canceled", func(t *testing.T) {
			cfg := testConfig()
			cfg.RelativeTolerance = 1e-9
			cfg.MaxTrials = math.MaxInt64
			cfg.BatchSize = 10

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			var res Result
			var err error
			th.ExpectNotHang(t, 10*time.Second, func() {
				res, err = Estimate(ctx, cfg, opts...)
			})

			th.ExpectErrorIs(t, err, context.DeadlineExceeded)
			th.ExpectValue(t, res.State, Running)
			th.ExpectValue(t, res.N, res.Batches*int64(cfg.BatchSize))
			th.ExpectValue(t, Merge(th.FromSlice(res.PerWorker), 2).N, res.N)
		})

		t.Run("canceled before start", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := Estimate(ctx, testConfig(), opts...)
			th.ExpectErrorIs(t, err, context.Canceled)
			th.ExpectValue(t, res.N, int64(0))
		})
	})
}

func TestRun(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.BatchSize = 0

		started := false
		_, err := Run(context.Background(), cfg, WithSampler(func(s *Stream) float64 {
			started = true
			return s.Float64()
		}))

		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *ConfigError, got %v", err)
		}
		th.ExpectValue(t, cfgErr.Field, "batch")
		th.ExpectValue(t, started, false)
	})

	t.Run("valid config", func(t *testing.T) {
		res, err := Run(context.Background(), testConfig(), WithEntropy(rand.New(rand.NewSource(7))))
		th.ExpectNoError(t, err)
		th.ExpectValue(t, res.State, Converged)
		th.ExpectValue(t, len(res.Seeds), 4)
	})
}

func TestMerge(t *testing.T) {
	in := make(chan Accumulator)
	go func() {
		defer close(in)
		for i := 0; i < 100; i++ {
			in <- Accumulator{SumX: 1, SumX2: 2, N: 3}
		}
	}()

	th.ExpectValue(t, Merge(in, 4), Accumulator{SumX: 100, SumX2: 200, N: 300})
}
