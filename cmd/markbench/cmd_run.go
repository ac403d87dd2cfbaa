package main

import (
	"context"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/messages"
	"github.com/Swind/markbench/workloads"
	"github.com/spf13/cobra"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		suite           string
		duration        time.Duration
		locale          string
		continueOnError bool
		pin             bool
		metricsAddr     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark suite and print rhedstone scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			override(cmd, "suite", &cfg.Suite, suite)
			override(cmd, "duration", &cfg.Duration, duration)
			override(cmd, "locale", &cfg.Locale, locale)
			override(cmd, "continue-on-error", &cfg.ContinueOnError, continueOnError)
			override(cmd, "pin", &cfg.PinLanes, pin)
			override(cmd, "metrics-addr", &cfg.MetricsAddr, metricsAddr)
			return a.runSuite(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&suite, "suite", workloads.DefaultSuite, "suite version to run ("+joinNames()+")")
	flags.DurationVar(&duration, "duration", core.DefaultTestDuration, "timed window per run")
	flags.StringVar(&locale, "locale", messages.DefaultLocale, "output locale (en-US, de-DE, plain)")
	flags.BoolVar(&continueOnError, "continue-on-error", false, "skip failing workloads instead of aborting")
	flags.BoolVar(&pin, "pin", false, "pin each lane to its own CPU")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func (a *app) runSuite(ctx context.Context, cfg Config) error {
	suite, err := workloads.Lookup(cfg.Suite)
	if err != nil {
		return err
	}
	gen, err := messages.New(cfg.Locale)
	if err != nil {
		return err
	}

	var metrics core.Metrics = &core.NilMetrics{}
	var server *metricsServer
	if cfg.MetricsAddr != "" {
		server, err = startMetricsServer(ctx, cfg.MetricsAddr, a.logger)
		if err != nil {
			return err
		}
		defer server.Close()
		metrics = server.exporter
	}

	engine := core.NewEngine(core.EngineOptions{
		Name:     "markbench",
		Duration: cfg.Duration,
		PinLanes: cfg.PinLanes,
		Logger:   a.logger,
		Metrics:  metrics,
	})
	reporter := messages.NewWriterReporter(a.out, gen, a.style())
	runner := core.NewTestRunner(engine, suite, reporter, core.RunnerOptions{
		Name:            cfg.Suite,
		ContinueOnError: cfg.ContinueOnError,
		Logger:          a.logger,
		Metrics:         metrics,
	})
	if server != nil {
		server.poller.AddEngine(engine.Name(), engine)
		server.poller.AddRunner(cfg.Suite, runner)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	for _, ferr := range report.Failures {
		a.logger.Warn("Workload skipped", core.F("error", ferr))
	}
	return reporter.Err()
}
