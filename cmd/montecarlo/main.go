// Command montecarlo estimates the mean of a random variable on parallel workers
// and stops once the requested relative accuracy is reached.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/destel/montecarlo"
	"github.com/destel/montecarlo/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Adaptive parallel Monte Carlo estimation of a mean",
		Long: "montecarlo draws batches of samples on parallel workers, merges them into a global\n" +
			"accumulator and stops when the relative standard error of the mean drops below\n" +
			"the tolerance, or when the trial cap is exceeded.\n\n" +
			"Every flag can also be set in the config file or through an MC_ environment variable,\n" +
			"e.g. MC_WORKERS=8 or MC_MAX_TRIALS=1000000.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			return run(cmd.Context(), s, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	def := montecarlo.DefaultConfig()

	flags := cmd.Flags()
	flags.IntP("workers", "p", def.Workers, fmt.Sprintf("number of parallel workers, at most %d", montecarlo.MaxWorkers))
	flags.Float64P("rtol", "t", def.RelativeTolerance, "target relative error of the mean")
	flags.Int64P("max-trials", "n", def.MaxTrials, "maximum number of trials")
	flags.IntP("batch", "b", def.BatchSize, "number of trials per batch")
	flags.IntP("verbose", "v", def.Verbosity, "verbosity level")
	flags.Int64("seed", def.Seed, "master seed, 0 seeds from the clock")
	flags.String("backend", montecarlo.Pool().String(), "execution backend: pool or spawn")
	flags.String("coordination", montecarlo.Mutex.String(), "merge protocol: mutex or channel")
	flags.StringP("output", "o", "text", "report format: text or yaml")
	flags.String("hist", "", "save a histogram of batch means to `FILE` (png, svg, pdf)")
	flags.Bool("progress", false, "show a progress bar even if stderr is not a terminal")
	flags.String("log-level", "", "log level, overrides the one derived from verbosity")
	flags.StringVar(&configFile, "config", "", "YAML config `FILE`")

	cobra.CheckErr(config.BindFlags(v, flags))

	return cmd
}
