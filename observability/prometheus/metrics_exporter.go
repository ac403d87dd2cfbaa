package prometheus

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Swind/markbench/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	runDurationSeconds *prom.HistogramVec
	iterationsTotal    *prom.CounterVec
	workloadPanicTotal *prom.CounterVec
	score              *prom.GaugeVec
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "markbench"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Measured timed window per workload run in seconds.",
		Buckets:   buckets,
	}, []string{"workload", "threads"})
	iterationsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "iterations_total",
		Help:      "Total workload iterations completed across all lanes.",
	}, []string{"workload", "threads"})
	panicVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "workload_panic_total",
		Help:      "Total number of workload panics.",
	}, []string{"workload"})
	scoreVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "score",
		Help:      "Latest accumulated rhedstone score.",
	}, []string{"kind"})

	var err error
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if iterationsVec, err = registerCollector(reg, iterationsVec); err != nil {
		return nil, err
	}
	if panicVec, err = registerCollector(reg, panicVec); err != nil {
		return nil, err
	}
	if scoreVec, err = registerCollector(reg, scoreVec); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		runDurationSeconds: durationVec,
		iterationsTotal:    iterationsVec,
		workloadPanicTotal: panicVec,
		score:              scoreVec,
	}, nil
}

// RecordRun records the window length and iteration count of a run.
func (m *MetricsExporter) RecordRun(workloadID string, threads int, elapsed time.Duration, iterations uint64) {
	if m == nil {
		return
	}
	workload := normalizeLabel(workloadID, "unknown")
	lanes := strconv.Itoa(threads)
	m.runDurationSeconds.WithLabelValues(workload, lanes).Observe(elapsed.Seconds())
	m.iterationsTotal.WithLabelValues(workload, lanes).Add(float64(iterations))
}

// RecordWorkloadPanic records workload panic events.
func (m *MetricsExporter) RecordWorkloadPanic(workloadID string, panicInfo any) {
	if m == nil {
		return
	}
	m.workloadPanicTotal.WithLabelValues(normalizeLabel(workloadID, "unknown")).Inc()
}

// RecordScore records the latest score of a kind.
func (m *MetricsExporter) RecordScore(kind string, score float64) {
	if m == nil {
		return
	}
	m.score.WithLabelValues(normalizeLabel(kind, "unknown")).Set(score)
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
