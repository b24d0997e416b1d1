package montecarlo

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/destel/montecarlo/internal/core"
)

// Result is the outcome of a run.
type Result struct {
	// Accumulator is the global accumulator after the last merge.
	Accumulator

	// State is Converged or Exhausted for a finished run, and Running if the run was canceled.
	State State

	Workers int
	Batches int64
	Seeds   []uint32

	// PerWorker holds the samples drawn by each worker, indexed like Seeds.
	// Merged together they give Accumulator.
	PerWorker []Accumulator
}

// Run validates the configuration and then performs the estimation.
// An invalid configuration is reported as a *ConfigError before any worker is started.
func Run(ctx context.Context, cfg Config, opts ...Option) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	return Estimate(ctx, cfg, opts...)
}

// Estimate samples on cfg.Workers parallel workers until the stopping rule is met.
// It assumes that cfg is valid, see [Config.Validate].
//
// Each worker repeatedly draws a batch on its own stream, merges it into the global accumulator
// and checks the stopping rule on the result. Every worker completes at least one batch.
//
// If ctx is canceled, workers stop before their next batch and Estimate returns
// the partial result together with the context error.
func Estimate(ctx context.Context, cfg Config, opts ...Option) (Result, error) {
	o := newOptions(opts)

	entropy := o.entropy
	if entropy == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		entropy = rand.New(rand.NewSource(seed))
	}

	seeds := Seeds(entropy, cfg.Workers)

	coord := o.coordination.coordinator(cfg, o.observer)
	perWorker := make([]Accumulator, cfg.Workers)

	o.logger.WithFields(logrus.Fields{
		"workers":      cfg.Workers,
		"batch":        cfg.BatchSize,
		"rtol":         cfg.RelativeTolerance,
		"max_trials":   cfg.MaxTrials,
		"backend":      o.backend,
		"coordination": o.coordination,
	}).Debug("run started")

	err := o.backend.Run(ctx, cfg.Workers, func(ctx context.Context, worker int) error {
		log := o.logger.WithField("worker", worker)
		log.WithField("seed", seeds[worker]).Debug("worker started")

		stream := NewStream(seeds[worker])
		draw := func() float64 {
			return o.sampler(stream)
		}

		batches := 0
		for batches == 0 || !coord.State().Terminal() {
			if err := ctx.Err(); err != nil {
				log.WithField("batches", batches).Debug("worker canceled")
				return err
			}

			batch := core.RunBatch(cfg.BatchSize, draw)
			perWorker[worker] = perWorker[worker].Merge(batch)

			state := coord.MergeAndCheck(batch)
			batches++

			if state.Terminal() {
				break
			}
		}

		log.WithField("batches", batches).Debug("worker stopped")
		return nil
	})

	acc, batches := coord.Close()

	res := Result{
		Accumulator: acc,
		State:       coord.State(),
		Workers:     cfg.Workers,
		Batches:     batches,
		Seeds:       seeds,
		PerWorker:   perWorker,
	}

	o.logger.WithFields(logrus.Fields{
		"state":   res.State,
		"trials":  res.N,
		"batches": res.Batches,
		"mean":    res.Mean(),
		"stderr":  res.StdErr(),
	}).Info("run finished")

	return res, err
}
