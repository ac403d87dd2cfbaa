// Command markbench runs the rhedstone benchmark suites.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

func main() {
	// Lanes spin on every CPU; the controller needs a P of its own.
	if want := runtime.NumCPU() + 1; runtime.GOMAXPROCS(0) < want {
		runtime.GOMAXPROCS(want)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
