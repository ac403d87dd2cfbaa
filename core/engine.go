package core

import (
	"context"
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// DefaultTestDuration is the timed window used by the suite runner.
const DefaultTestDuration = time.Second

// EngineOptions configures an Engine. Zero values select defaults.
type EngineOptions struct {
	// Name labels logs, metrics and stats. Defaults to "engine".
	Name string

	// Duration is the default timed window. Defaults to DefaultTestDuration.
	Duration time.Duration

	// HardwareConcurrency overrides the detected logical CPU count.
	HardwareConcurrency int

	// PinLanes binds lane i to the i-th CPU of the process affinity mask.
	// Pinned OS threads are discarded when the lane exits.
	PinLanes bool

	Logger          Logger
	Metrics         Metrics
	HistoryCapacity int
}

// Engine runs a workload concurrently on a fixed number of lanes for a fixed
// wall-clock window and reports how many iterations each lane completed.
//
// Each Run call owns its own barrier state, so an Engine can be reused for any
// number of sequential runs. Concurrent Run calls are allowed but will
// compete for CPUs and skew each other's numbers.
type Engine struct {
	name     string
	duration time.Duration
	hw       int
	pin      bool
	logger   Logger
	metrics  Metrics

	activeLanes   atomic.Int32
	runsCompleted atomic.Int64
	runsFailed    atomic.Int64

	history *runHistory
}

// NewEngine creates an Engine.
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		name:     opts.Name,
		duration: opts.Duration,
		hw:       opts.HardwareConcurrency,
		pin:      opts.PinLanes,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		history:  newRunHistory(opts.HistoryCapacity),
	}
	if e.name == "" {
		e.name = "engine"
	}
	if e.duration <= 0 {
		e.duration = DefaultTestDuration
	}
	if e.hw <= 0 {
		e.hw = HardwareConcurrency()
	}
	if e.logger == nil {
		e.logger = NewNoOpLogger()
	}
	if e.metrics == nil {
		e.metrics = &NilMetrics{}
	}
	return e
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return e.name
}

// HardwareConcurrency returns the lane ceiling of this engine.
func (e *Engine) HardwareConcurrency() int {
	return e.hw
}

// Duration returns the default timed window.
func (e *Engine) Duration() time.Duration {
	return e.duration
}

// ResolveThreads returns the number of lanes a request for requested threads will launch.
func (e *Engine) ResolveThreads(requested int) int {
	return ResolveThreads(requested, e.hw)
}

// laneCounter is padded on both sides so that neighbouring lanes never
// write to the same cache line.
type laneCounter struct {
	_ cpu.CacheLinePad
	n atomic.Uint64
	_ cpu.CacheLinePad
}

// Window phases. A window only ever moves forward.
const (
	phaseParked int32 = iota
	phaseOpen
	phaseClosed
)

// window is the barrier state of one Run call. phase gates the start;
// running is the stop flag the workloads poll.
type window struct {
	phase    atomic.Int32
	running  atomic.Bool
	arrived  atomic.Int64
	exited   atomic.Int64
	counters []laneCounter

	faultOnce sync.Once
	fault     chan struct{}
}

func newWindow(lanes int) *window {
	w := &window{
		counters: make([]laneCounter, lanes),
		fault:    make(chan struct{}),
	}
	w.arrived.Store(int64(lanes))
	w.exited.Store(int64(lanes))
	return w
}

// abort closes the window early after a lane fault.
func (w *window) abort() {
	w.close()
	w.faultOnce.Do(func() { close(w.fault) })
}

func (w *window) open() {
	w.running.Store(true)
	w.phase.Store(phaseOpen)
}

func (w *window) close() {
	w.running.Store(false)
	w.phase.Store(phaseClosed)
}

// Run executes req and blocks until every lane has exited.
//
// The returned Elapsed is measured from the moment every lane is parked at
// the arrival barrier to the moment every lane has passed the exit barrier,
// so lane start-up and teardown are not charged to the workload.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if err := req.Entry.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	threads := e.ResolveThreads(req.Threads)
	duration := req.Duration
	if duration <= 0 {
		duration = e.duration
	}
	runID := uuid.NewString()

	e.logger.Debug("Starting timed window",
		F("run", runID),
		F("workload", req.Entry.ID),
		F("threads", threads),
		F("duration", duration))

	e.activeLanes.Add(int32(threads))
	defer e.activeLanes.Add(-int32(threads))

	w := newWindow(threads)
	var lanes errgroup.Group
	for i := range threads {
		lanes.Go(func() error {
			return e.lane(i, req.Entry, w)
		})
	}

	for w.arrived.Load() > 0 {
		runtime.Gosched()
	}
	startedAt := time.Now()
	w.open()

	timer := time.NewTimer(duration)
	select {
	case <-timer.C:
	case <-w.fault:
		timer.Stop()
	}
	w.close()

	for w.exited.Load() > 0 {
		runtime.Gosched()
	}
	stoppedAt := time.Now()

	laneErr := lanes.Wait()

	result := &RunResult{
		RunID:      runID,
		WorkloadID: req.Entry.ID,
		Requested:  req.Threads,
		Counts:     make([]uint64, threads),
		Elapsed:    stoppedAt.Sub(startedAt),
		StartedAt:  startedAt,
		StoppedAt:  stoppedAt,
	}
	for i := range w.counters {
		result.Counts[i] = w.counters[i].n.Load()
	}

	e.history.Add(RunRecord{
		RunID:      runID,
		WorkloadID: req.Entry.ID,
		EngineName: e.name,
		Threads:    threads,
		Iterations: result.Total(),
		StartedAt:  startedAt,
		StoppedAt:  stoppedAt,
		Elapsed:    result.Elapsed,
		Panicked:   laneErr != nil,
	})

	if laneErr != nil {
		e.runsFailed.Add(1)
		var perr *WorkloadPanicError
		if errors.As(laneErr, &perr) {
			e.metrics.RecordWorkloadPanic(req.Entry.ID, perr.Value)
			e.logger.Error("Workload panicked",
				F("run", runID),
				F("workload", req.Entry.ID),
				F("lane", perr.Lane),
				F("panic", perr.Value),
				F("stack", string(perr.Stack)))
		}
		return nil, laneErr
	}

	e.runsCompleted.Add(1)
	e.metrics.RecordRun(req.Entry.ID, threads, result.Elapsed, result.Total())
	e.logger.Debug("Timed window finished",
		F("run", runID),
		F("workload", req.Entry.ID),
		F("elapsed", result.Elapsed),
		F("iterations", result.Total()))

	return result, nil
}

// lane is the body of one worker. It parks at the arrival barrier, runs the
// workload while the window is open and always passes the exit barrier, even
// when the workload panics.
func (e *Engine) lane(id int, entry Entry, w *window) (err error) {
	runtime.LockOSThread()
	pinned := false
	defer func() {
		// A pinned thread keeps its affinity mask; leaving it locked makes
		// the runtime destroy it instead of returning it to the pool.
		if !pinned {
			runtime.UnlockOSThread()
		}
	}()

	if e.pin {
		if perr := pinCurrentThread(id); perr != nil {
			e.logger.Warn("Lane pinning failed", F("lane", id), F("error", perr))
		} else {
			pinned = true
		}
	}

	counter := &w.counters[id].n

	w.arrived.Add(-1)
	defer w.exited.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			err = &WorkloadPanicError{
				WorkloadID: entry.ID,
				Lane:       id,
				Value:      r,
				Stack:      debug.Stack(),
			}
			w.abort()
		}
	}()

	phase := w.phase.Load()
	for phase == phaseParked {
		phase = w.phase.Load()
	}
	// A lane scheduled after a very short window has already closed
	// reports zero iterations.
	if phase == phaseClosed {
		return nil
	}

	if counted := entry.Counted; counted != nil {
		for w.running.Load() {
			counter.Add(counted(&w.running))
		}
		return nil
	}

	run := entry.Run
	for w.running.Load() {
		run()
		counter.Add(1)
	}
	return nil
}

// Stats returns current observability data for this engine.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{
		Name:                e.name,
		HardwareConcurrency: e.hw,
		ActiveLanes:         int(e.activeLanes.Load()),
		RunsCompleted:       e.runsCompleted.Load(),
		RunsFailed:          e.runsFailed.Load(),
	}
	if last, ok := e.history.Last(); ok {
		stats.LastWorkload = last.WorkloadID
		stats.LastRunAt = last.StoppedAt
	}
	return stats
}

// RecentRuns returns completed run records in newest-first order.
func (e *Engine) RecentRuns(limit int) []RunRecord {
	return e.history.Recent(limit)
}
