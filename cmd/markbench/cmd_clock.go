package main

import (
	"fmt"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/diagnostics"
	"github.com/spf13/cobra"
)

func (a *app) newClockCmd() *cobra.Command {
	var (
		samples int
		window  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Estimate the clock speed of one core from its add throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := core.NewEngine(core.EngineOptions{Name: "clock", Logger: a.logger})
			est, err := diagnostics.EstimateClock(cmd.Context(), engine, diagnostics.ClockOptions{
				Samples: samples,
				Window:  window,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Samples        : %d x %v\n", est.N, window)
			fmt.Fprintf(a.out, "Mean           : %.0f adds/s\n", est.Mean)
			fmt.Fprintf(a.out, "Std deviation  : %.0f adds/s\n", est.StdDev)
			fmt.Fprintf(a.out, "95%% interval   : [%.0f, %.0f]\n", est.Lo, est.Hi)
			fmt.Fprintf(a.out, "Estimated clock: %.2f GHz\n", est.GHz)
			for _, w := range est.Warnings {
				a.logger.Warn("Clock estimate", core.F("warning", w))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&samples, "samples", diagnostics.DefaultSamples, "number of timed windows")
	flags.DurationVar(&window, "window", diagnostics.DefaultWindow, "length of each window")
	return cmd
}
