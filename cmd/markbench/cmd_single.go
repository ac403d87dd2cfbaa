package main

import (
	"fmt"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/workloads"
	"github.com/spf13/cobra"
)

const defaultSingleDuration = 5 * time.Second

func (a *app) newSingleCmd() *cobra.Command {
	var (
		workloadID string
		threads    int
		duration   time.Duration
		pin        bool
	)

	cmd := &cobra.Command{
		Use:   "single",
		Short: "Run one workload and print the raw harness numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := workloads.All().Lookup(workloadID)
			if err != nil {
				return err
			}
			if duration <= 0 {
				duration = defaultSingleDuration
			}
			pinLanes := a.cfg.PinLanes
			override(cmd, "pin", &pinLanes, pin)

			engine := core.NewEngine(core.EngineOptions{
				Name:     "single",
				PinLanes: pinLanes,
				Logger:   a.logger,
			})

			fmt.Fprintf(a.out, "Beginning %s that will run for %v...\n", entry.ID, duration)
			result, err := engine.Run(cmd.Context(), core.RunRequest{
				Entry:    entry,
				Threads:  threads,
				Duration: duration,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Test complete. Outputting results:")
			fmt.Fprintf(a.out, "Requested time: %dms\n", duration.Milliseconds())
			fmt.Fprintf(a.out, "Actual time   : %dns\n", result.Elapsed.Nanoseconds())
			fmt.Fprintf(a.out, "Requested Threads: %d\n", result.Requested)
			fmt.Fprintf(a.out, "Actual Threads   : %d\n", result.Threads())
			fmt.Fprintf(a.out, "Total Instruction Count: %d\n", result.Total())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&workloadID, "workload", workloads.IDAddThroughput, "workload id (see 'markbench list')")
	flags.IntVar(&threads, "threads", 1, "lanes to launch; 0 means every hardware thread")
	flags.DurationVar(&duration, "duration", defaultSingleDuration, "timed window")
	flags.BoolVar(&pin, "pin", false, "pin each lane to its own CPU")
	return cmd
}
