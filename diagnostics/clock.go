// Package diagnostics estimates the clock speed of one core from the integer
// add throughput of a single lane.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/workloads"
	"golang.org/x/perf/benchmath"
)

const (
	DefaultSamples = 10
	DefaultWindow  = 200 * time.Millisecond

	// confidence of the reported interval.
	confidence = 0.95
)

// ErrTooFewSamples is returned when fewer than two samples are requested.
var ErrTooFewSamples = errors.New("clock estimation needs at least two samples")

// ClockOptions configures EstimateClock. Zero values select defaults.
type ClockOptions struct {
	Samples int
	Window  time.Duration
}

// Summary is the mean and spread of a set of samples.
type Summary struct {
	N        int
	Mean     float64
	Variance float64
	StdDev   float64

	// Lo and Hi bound the 95% confidence interval of the mean.
	Lo, Hi   float64
	Warnings []error
}

// ClockEstimate is the outcome of EstimateClock. Rates are additions per
// second of one lane.
type ClockEstimate struct {
	Rates []float64
	Summary

	// GHz assumes one dependent add retires per cycle.
	GHz float64
}

// Summarize computes the mean, sample variance and a normal-assumption
// confidence interval of values.
func Summarize(values []float64) (Summary, error) {
	n := len(values)
	if n < 2 {
		return Summary{}, ErrTooFewSamples
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(n-1)

	sorted := append([]float64(nil), values...)
	sample := benchmath.NewSample(sorted, &benchmath.DefaultThresholds)
	ci := benchmath.AssumeNormal.Summary(sample, confidence)

	return Summary{
		N:        n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Lo:       ci.Lo,
		Hi:       ci.Hi,
		Warnings: ci.Warnings,
	}, nil
}

var clockEntry = core.Entry{ID: "diagnostics.clock", Counted: workloads.AddThroughput}

// EstimateClock runs the add workload on one lane opts.Samples times and
// summarizes the per-sample rates.
func EstimateClock(ctx context.Context, engine *core.Engine, opts ClockOptions) (*ClockEstimate, error) {
	if opts.Samples == 0 {
		opts.Samples = DefaultSamples
	}
	if opts.Samples < 2 {
		return nil, ErrTooFewSamples
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}

	rates := make([]float64, 0, opts.Samples)
	for i := range opts.Samples {
		result, err := engine.Run(ctx, core.RunRequest{
			Entry:    clockEntry,
			Threads:  1,
			Duration: opts.Window,
		})
		if err != nil {
			return nil, fmt.Errorf("clock sample %d: %w", i, err)
		}
		rates = append(rates, result.Throughput(0))
	}

	summary, err := Summarize(rates)
	if err != nil {
		return nil, err
	}
	return &ClockEstimate{
		Rates:   rates,
		Summary: summary,
		GHz:     summary.Mean / 1e9,
	}, nil
}
