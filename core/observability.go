package core

import "time"

// RunRecord captures a completed engine run.
type RunRecord struct {
	RunID      string
	WorkloadID string
	EngineName string
	Threads    int
	Iterations uint64
	StartedAt  time.Time
	StoppedAt  time.Time
	Elapsed    time.Duration
	Panicked   bool
}

// EngineStats represents runtime observability state for an engine.
type EngineStats struct {
	Name                string
	HardwareConcurrency int
	ActiveLanes         int
	RunsCompleted       int64
	RunsFailed          int64
	LastWorkload        string
	LastRunAt           time.Time
}

// RunnerStats represents the progress of a suite run.
type RunnerStats struct {
	Name      string
	Total     int
	Completed int
	Failed    int
	Running   bool
	Current   string
	Single    float64
	AllThread float64
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting benchmark metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods are called from the controlling goroutine after a window has closed,
// never from inside a lane, so they cannot disturb a measurement.
type Metrics interface {
	// RecordRun records a finished timed window.
	//
	// Parameters:
	// - workloadID: The workload that ran
	// - threads: The number of lanes launched
	// - elapsed: The measured window
	// - iterations: The summed lane counts
	RecordRun(workloadID string, threads int, elapsed time.Duration, iterations uint64)

	// RecordWorkloadPanic records that a workload panicked inside a lane.
	RecordWorkloadPanic(workloadID string, panicInfo any)

	// RecordScore records an accumulated score.
	//
	// Parameters:
	// - kind: "single" or "all"
	// - score: The accumulated throughput
	RecordScore(kind string, score float64)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordRun is a no-op.
func (m *NilMetrics) RecordRun(workloadID string, threads int, elapsed time.Duration, iterations uint64) {
}

// RecordWorkloadPanic is a no-op.
func (m *NilMetrics) RecordWorkloadPanic(workloadID string, panicInfo any) {
}

// RecordScore is a no-op.
func (m *NilMetrics) RecordScore(kind string, score float64) {
}
