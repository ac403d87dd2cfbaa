package markbench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/workloads"
)

// =============================================================================
// Global Engine Helper (Singleton)
// =============================================================================

var (
	globalEngine *core.Engine
	globalMu     sync.Mutex
)

// InitGlobalEngine initializes the global engine with opts.
// Calls after the first are no-ops until ShutdownGlobalEngine.
func InitGlobalEngine(opts EngineOptions) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalEngine != nil {
		return // Already initialized
	}

	if opts.Name == "" {
		opts.Name = "global-engine"
	}
	globalEngine = core.NewEngine(opts)
}

// GetGlobalEngine returns the global engine instance.
// It panics if InitGlobalEngine has not been called.
func GetGlobalEngine() *Engine {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalEngine == nil {
		panic("GlobalEngine not initialized. Call InitGlobalEngine() first.")
	}
	return globalEngine
}

// ShutdownGlobalEngine releases the global engine.
// Runs already in progress finish on the released engine.
func ShutdownGlobalEngine() {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalEngine = nil
}

// RunSuite runs the named suite on the global engine.
// An empty name selects DefaultSuite; a nil reporter discards progress.
func RunSuite(ctx context.Context, suite string, reporter Reporter, opts RunnerOptions) (*SuiteReport, error) {
	if suite == "" {
		suite = workloads.DefaultSuite
	}
	entries, err := workloads.Lookup(suite)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = suite
	}
	return core.NewTestRunner(GetGlobalEngine(), entries, reporter, opts).Run(ctx)
}

// RunSingle runs one registered workload on the global engine.
// threads <= 0 selects every hardware thread; duration 0 the engine default.
func RunSingle(ctx context.Context, workloadID string, threads int, duration time.Duration) (*RunResult, error) {
	entry, err := workloads.All().Lookup(workloadID)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", workloadID, err)
	}
	return GetGlobalEngine().Run(ctx, RunRequest{
		Entry:    entry,
		Threads:  threads,
		Duration: duration,
	})
}
