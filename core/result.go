package core

import (
	"fmt"
	"time"
)

// RunRequest asks the engine to run one workload on a number of lanes.
type RunRequest struct {
	Entry Entry

	// Threads <= 0 means every hardware thread; larger values are clamped.
	Threads int

	// Duration of the timed window. Zero uses the engine default.
	Duration time.Duration
}

// RunResult holds the per-lane iteration counts of one timed window.
// It is owned by the caller and never modified by the engine after return.
type RunResult struct {
	RunID      string
	WorkloadID string

	// Requested is the thread count from the request before resolution.
	Requested int

	// Counts has one entry per launched lane, in launch order.
	Counts []uint64

	// Elapsed runs from the moment every lane passed the arrival barrier to
	// the moment every lane passed the exit barrier.
	Elapsed   time.Duration
	StartedAt time.Time
	StoppedAt time.Time
}

// Threads returns the number of lanes that were launched.
func (r *RunResult) Threads() int {
	return len(r.Counts)
}

// Total returns the sum of all lane counts.
func (r *RunResult) Total() uint64 {
	var total uint64
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// Throughput returns iterations per second for lane i.
func (r *RunResult) Throughput(i int) float64 {
	return float64(r.Counts[i]) / r.Elapsed.Seconds()
}

// TotalThroughput returns the summed iterations per second of every lane.
func (r *RunResult) TotalThroughput() float64 {
	var total float64
	for i := range r.Counts {
		total += r.Throughput(i)
	}
	return total
}

// WorkloadPanicError reports a panic raised by a workload inside a lane.
type WorkloadPanicError struct {
	WorkloadID string
	Lane       int
	Value      any
	Stack      []byte
}

func (e *WorkloadPanicError) Error() string {
	return fmt.Sprintf("workload %s panicked on lane %d: %v", e.WorkloadID, e.Lane, e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *WorkloadPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
