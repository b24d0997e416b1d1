package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/destel/montecarlo"
	"github.com/destel/montecarlo/internal/config"
	"github.com/destel/montecarlo/internal/report"
)

func run(ctx context.Context, s config.Settings, stdout, stderr io.Writer) error {
	logger, err := newLogger(s, stderr)
	if err != nil {
		return err
	}

	opts, err := s.Options()
	if err != nil {
		return err
	}
	opts = append(opts, montecarlo.WithLogger(logger))

	if s.Verbosity > 0 && s.Output == "text" {
		if err := report.Params(stdout, s.Config); err != nil {
			return err
		}
	}

	var observers []func(batch, global montecarlo.Accumulator)

	var means *report.BatchMeans
	if s.Hist != "" {
		means = report.NewBatchMeans()
		observers = append(observers, means.Observe)
	}

	var bar *pb.ProgressBar
	if s.Progress || isTerminal(stderr) {
		bar = pb.New64(s.MaxTrials)
		bar.SetWriter(stderr)
		bar.Start()
		observers = append(observers, func(_, global montecarlo.Accumulator) {
			bar.SetCurrent(global.N)
		})
	}

	if len(observers) > 0 {
		opts = append(opts, montecarlo.WithObserver(func(batch, global montecarlo.Accumulator) {
			for _, f := range observers {
				f(batch, global)
			}
		}))
	}

	start := time.Now()
	res, err := montecarlo.Run(ctx, s.Config, opts...)
	elapsed := time.Since(start)

	if bar != nil {
		bar.Finish()
	}

	if err != nil {
		return errors.Wrapf(err, "run stopped after %d trials", res.N)
	}

	summary := report.NewSummary(res, elapsed)

	if means != nil {
		summary.BatchMeans = means.Summary()
		if err := means.SavePlot(s.Hist); err != nil {
			return errors.Wrap(err, "save histogram")
		}
		logger.WithField("file", s.Hist).Info("histogram saved")
	}

	return report.Write(stdout, s.Output, summary)
}

func newLogger(s config.Settings, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch {
	case s.LogLevel != "":
		level, err := logrus.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, errors.Wrap(err, "log level")
		}
		logger.SetLevel(level)
	case s.Verbosity >= 2:
		logger.SetLevel(logrus.DebugLevel)
	case s.Verbosity == 1:
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.WarnLevel)
	}

	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
