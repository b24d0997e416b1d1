// Package report formats the parameters and the outcome of a run.
package report

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/destel/montecarlo"
)

// Summary is the reportable outcome of a run.
type Summary struct {
	State   string        `yaml:"state"`
	Mean    float64       `yaml:"mean"`
	StdErr  float64       `yaml:"stderr"`
	RelErr  float64       `yaml:"relerr"`
	Trials  int64         `yaml:"ntrials"`
	Batches int64         `yaml:"batches"`
	Workers int           `yaml:"workers"`
	Elapsed time.Duration `yaml:"elapsed"`

	PerWorkerTrials []int64 `yaml:"per_worker_trials,flow,omitempty"`

	Sums montecarlo.Accumulator `yaml:"sums"`

	BatchMeans *BatchMeansSummary `yaml:"batch_means,omitempty"`
}

// BatchMeansSummary describes the distribution of per-batch means.
type BatchMeansSummary struct {
	Count  int64   `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	StdErr float64 `yaml:"stderr"`
}

// NewSummary builds a Summary from a result and the wall-clock duration of the run.
func NewSummary(res montecarlo.Result, elapsed time.Duration) Summary {
	perWorker := make([]int64, len(res.PerWorker))
	for i, acc := range res.PerWorker {
		perWorker[i] = acc.N
	}

	return Summary{
		State:   res.State.String(),
		Mean:    res.Mean(),
		StdErr:  res.StdErr(),
		RelErr:  res.RelErr(),
		Trials:  res.N,
		Batches: res.Batches,
		Workers: res.Workers,
		Elapsed: elapsed,
		Sums:    res.Accumulator,

		PerWorkerTrials: perWorker,
	}
}

// Params prints the run parameters.
func Params(w io.Writer, cfg montecarlo.Config) error {
	_, err := fmt.Fprintf(w, "--- Run input parameters:\n"+
		"rtol:      %e\n"+
		"maxtrials: %d\n"+
		"nbatch:    %d\n"+
		"workers:   %d\n",
		cfg.RelativeTolerance, cfg.MaxTrials, cfg.BatchSize, cfg.Workers)
	return err
}

// Text prints the estimate as "mean (stderr) from n trials", followed by the state and timing.
func Text(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "%g (%g) from %d trials\n%s after %d batches on %d workers in %v\n",
		s.Mean, s.StdErr, s.Trials, s.State, s.Batches, s.Workers, s.Elapsed)
	if err != nil {
		return err
	}

	if bm := s.BatchMeans; bm != nil {
		_, err = fmt.Fprintf(w, "batch means: mean=%g std-dev=%g +/- %g over %d batches\n",
			bm.Mean, bm.StdDev, bm.StdErr, bm.Count)
	}

	return err
}

// YAML writes the summary as a YAML document.
func YAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(s); err != nil {
		return err
	}

	return enc.Close()
}

// Write prints the summary in the given format: "text" or "yaml".
func Write(w io.Writer, format string, s Summary) error {
	switch format {
	case "yaml":
		return YAML(w, s)
	case "text", "":
		return Text(w, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
