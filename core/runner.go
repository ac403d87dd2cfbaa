package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// RunnerOptions configures a TestRunner. Zero values select defaults.
type RunnerOptions struct {
	// Name labels logs and stats. Defaults to "suite".
	Name string

	// Rand orders the suite. Defaults to an entropy-seeded generator.
	Rand *rand.Rand

	// ContinueOnError records a failing workload and moves on instead of
	// aborting the suite. Failed workloads contribute nothing to the scores.
	ContinueOnError bool

	Logger  Logger
	Metrics Metrics
}

// SuiteReport is everything a TestRunner produced.
type SuiteReport struct {
	RunID    string
	Order    []string
	Results  []*RunResult
	Scores   Scores
	Failures []error
}

// TestRunner runs every workload of a suite once on one lane and once on
// every hardware thread, in a shuffled order, folding results into the
// single-thread and all-thread accumulators.
type TestRunner struct {
	engine   *Engine
	suite    Suite
	reporter Reporter
	opts     RunnerOptions
	logger   Logger
	metrics  Metrics

	oneThread int
	allThread int

	statsMu sync.Mutex
	stats   RunnerStats
}

// NewTestRunner creates a runner. Panics if engine is nil.
func NewTestRunner(engine *Engine, suite Suite, reporter Reporter, opts RunnerOptions) *TestRunner {
	if engine == nil {
		panic("TestRunner: engine must not be nil")
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	if opts.Name == "" {
		opts.Name = "suite"
	}
	if opts.Rand == nil {
		opts.Rand = NewEntropyRand()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NewNoOpLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = &NilMetrics{}
	}
	return &TestRunner{
		engine:    engine,
		suite:     suite,
		reporter:  reporter,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		oneThread: 1,
		allThread: engine.HardwareConcurrency(),
		stats:     RunnerStats{Name: opts.Name, Total: len(suite)},
	}
}

// Run executes the suite. With the default options the first failing
// workload aborts the suite, Finish is not called and the error is returned.
func (r *TestRunner) Run(ctx context.Context) (*SuiteReport, error) {
	single := NewSingleAccumulator()
	all := NewLaneAccumulator(r.allThread)

	order := r.suite.Shuffled(r.opts.Rand)
	report := &SuiteReport{
		RunID: uuid.NewString(),
		Order: order.IDs(),
	}

	r.updateStats(func(s *RunnerStats) {
		*s = RunnerStats{Name: r.opts.Name, Total: len(order), Running: true}
	})
	defer r.updateStats(func(s *RunnerStats) {
		s.Running = false
		s.Current = ""
	})

	r.logger.Info("Starting suite",
		F("suite", r.opts.Name),
		F("run", report.RunID),
		F("order", report.Order),
		F("threads", r.allThread))

	for _, entry := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.updateStats(func(s *RunnerStats) { s.Current = entry.ID })

		results, err := r.runEntry(ctx, entry, single, all)
		if err != nil {
			err = fmt.Errorf("workload %s: %w", entry.ID, err)
			r.updateStats(func(s *RunnerStats) { s.Failed++ })
			if !r.opts.ContinueOnError {
				r.logger.Error("Suite aborted", F("suite", r.opts.Name), F("error", err))
				return nil, err
			}
			r.logger.Warn("Workload failed, continuing", F("suite", r.opts.Name), F("error", err))
			report.Failures = append(report.Failures, err)
			continue
		}

		report.Results = append(report.Results, results...)
		r.updateStats(func(s *RunnerStats) {
			s.Completed++
			s.Single = single.Total()
			s.AllThread = all.Total()
		})
	}

	report.Scores = ScoresFrom(single, all)
	r.metrics.RecordScore("single", report.Scores.SingleThread)
	r.metrics.RecordScore("all", report.Scores.AllThread)
	r.reporter.Finish(report.Scores)

	r.logger.Info("Suite finished",
		F("suite", r.opts.Name),
		F("run", report.RunID),
		F("single", report.Scores.SingleThread),
		F("all", report.Scores.AllThread),
		F("failures", len(report.Failures)))

	return report, nil
}

// runEntry runs both passes of one workload. Accumulators are only updated
// once both passes succeeded, so a failed workload leaves no partial score.
func (r *TestRunner) runEntry(ctx context.Context, entry Entry, single, all *Accumulator) ([]*RunResult, error) {
	one, err := r.runPass(ctx, entry, r.oneThread)
	if err != nil {
		return nil, err
	}
	many, err := r.runPass(ctx, entry, r.allThread)
	if err != nil {
		return nil, err
	}
	single.Add(one)
	all.Add(many)
	return []*RunResult{one, many}, nil
}

func (r *TestRunner) runPass(ctx context.Context, entry Entry, threads int) (*RunResult, error) {
	r.reporter.BeginRun(entry.ID, threads)
	result, err := r.engine.Run(ctx, RunRequest{Entry: entry, Threads: threads})
	if err != nil {
		return nil, err
	}
	r.reporter.EndRun(result)
	return result, nil
}

func (r *TestRunner) updateStats(fn func(*RunnerStats)) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	fn(&r.stats)
}

// Stats returns the progress of the current or last suite run.
func (r *TestRunner) Stats() RunnerStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}
