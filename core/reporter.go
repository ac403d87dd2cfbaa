package core

// Reporter receives progress from a TestRunner. It is called only from the
// runner's goroutine and never while a timed window is open.
type Reporter interface {
	// BeginRun is called before a workload runs on threads lanes.
	BeginRun(workloadID string, threads int)

	// EndRun is called with the result of a successful run.
	EndRun(result *RunResult)

	// Finish is called once with the final scores after the whole suite ran.
	Finish(scores Scores)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) BeginRun(workloadID string, threads int) {}
func (NopReporter) EndRun(result *RunResult)                {}
func (NopReporter) Finish(scores Scores)                    {}
