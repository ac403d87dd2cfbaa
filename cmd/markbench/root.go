package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/messages"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// app holds the state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	noColor    bool

	cfg    Config
	logger core.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: core.NewNoOpLogger()}

	rootCmd := &cobra.Command{
		Use:   "markbench",
		Short: "Measure single-threaded and multi-threaded throughput in rhedstones",
		Long: `markbench runs a battery of small workloads, each for a fixed window,
once on a single thread and once on every hardware thread, and sums the
per-second rates into rhedstone scores.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath, "path of the YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		a.newRunCmd(),
		a.newSingleCmd(),
		a.newListCmd(),
		a.newClockCmd(),
	)
	return rootCmd
}

// setup loads the config file and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	override(cmd, "log-level", &cfg.LogLevel, a.logLevel)
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	handler := slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level})
	a.logger = core.NewSlogLogger(slog.New(handler))
	return nil
}

// style returns the terminal style when stdout is a color-capable terminal.
func (a *app) style() messages.Style {
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		return messages.Style{}
	}
	f, ok := a.out.(*os.File)
	if !ok {
		return messages.Style{}
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return messages.Style{}
	}
	return messages.TerminalStyle()
}

// override copies v into dst when the named flag was set on the command line.
func override[T any](cmd *cobra.Command, name string, dst *T, v T) {
	if cmd.Flags().Changed(name) {
		*dst = v
	}
}
