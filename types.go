package markbench

import (
	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/workloads"
)

// Re-export commonly used types from core package for convenience.
// This allows users to import only the markbench package for most use cases.

// Workload is the unit of measured work
type Workload = core.Workload

// CountedWorkload reports its own operation count
type CountedWorkload = core.CountedWorkload

// Entry names a workload
type Entry = core.Entry

// Suite is an ordered list of entries
type Suite = core.Suite

// Engine runs timed windows
type Engine = core.Engine

// EngineOptions configures an Engine
type EngineOptions = core.EngineOptions

// RunRequest and RunResult describe one timed window
type RunRequest = core.RunRequest
type RunResult = core.RunResult

// RunnerOptions configures a suite run
type RunnerOptions = core.RunnerOptions

// SuiteReport is the outcome of a suite run
type SuiteReport = core.SuiteReport

// Scores holds the final rhedstone counts
type Scores = core.Scores

// Reporter receives suite progress
type Reporter = core.Reporter

// WorkloadPanicError is returned when a workload panics inside a lane
type WorkloadPanicError = core.WorkloadPanicError

// DefaultSuite is the suite used when none is named
const DefaultSuite = workloads.DefaultSuite

// Sentinel errors
var (
	ErrUnknownWorkload = core.ErrUnknownWorkload
	ErrUnknownSuite    = workloads.ErrUnknownSuite
)

// NewEngine creates an Engine.
// This is re-exported for callers who want an engine separate from the global one.
func NewEngine(opts EngineOptions) *Engine {
	return core.NewEngine(opts)
}

// NewTestRunner creates a suite runner on engine.
func NewTestRunner(engine *Engine, suite Suite, reporter Reporter, opts RunnerOptions) *core.TestRunner {
	return core.NewTestRunner(engine, suite, reporter, opts)
}
