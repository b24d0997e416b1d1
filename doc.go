// Package montecarlo estimates the expectation of a random variable by Monte Carlo sampling
// on a fixed number of parallel workers, and stops as soon as the estimate is precise enough.
//
// # Streams and Samplers
//
// Every worker owns a private [Stream]: a Mersenne Twister generator seeded from a seed that is
// drawn once, on the calling goroutine, before any worker starts (see [Seeds]).
// Streams are never shared, so drawing from them needs no synchronization.
//
// A [Sampler] turns a stream into samples of the quantity being estimated.
// The default sampler, [Uniform], draws values uniformly from [0,1].
//
// # Batches and the global accumulator
//
// Workers draw samples in local batches of [Config].BatchSize and reduce each batch to an [Accumulator]:
// the sum of samples, the sum of their squares and their count.
// Only then is the batch merged into the run's global accumulator. Large batches amortize the cost of coordination.
//
// Merging is serialized by one of two protocols, selected with [WithCoordination]:
//   - [Mutex] guards the global accumulator with a lock. A worker merges its batch and evaluates
//     the stopping rule inside one critical section.
//   - [Channel] hands batches to a single aggregating goroutine, which owns the accumulator.
//
// Either way a partially merged state is never observed.
//
// # Stopping rule
//
// After every merge the run checks the estimated relative standard error of the mean.
// With n trials, EX = sumX/n and EX2 = sumX2/n, the run has converged when
//
//	(EX2 - EX²) / n / EX² < RelativeTolerance²
//
// and is exhausted when n exceeds [Config].MaxTrials. The first worker to observe either condition
// moves the run into a terminal [State]; other workers notice at the top of their next iteration.
// Workers are never interrupted mid-batch, so a run can overshoot by up to one batch per worker.
//
// When the mean is exactly zero the ratio is not finite and never counts as converged.
// Such runs end on the trial cap.
//
// # Backends
//
// The workers themselves are run by a [Backend]: [Pool] uses an errgroup of goroutines,
// [Spawn] starts them directly. Both start all workers at once and join them at the end.
package montecarlo
