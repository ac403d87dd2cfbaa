package prometheus

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsExporter_RecordMethods(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("markbench", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordRun("test.null", 4, 250*time.Millisecond, 1000)
	exporter.RecordRun("test.null", 4, 250*time.Millisecond, 500)
	exporter.RecordWorkloadPanic("test.null", "panic")
	exporter.RecordScore("single", 200)

	panicTotal := testutil.ToFloat64(exporter.workloadPanicTotal.WithLabelValues("test.null"))
	if panicTotal != 1 {
		t.Fatalf("panic total = %v, want 1", panicTotal)
	}

	iterations := testutil.ToFloat64(exporter.iterationsTotal.WithLabelValues("test.null", "4"))
	if iterations != 1500 {
		t.Fatalf("iterations total = %v, want 1500", iterations)
	}

	score := testutil.ToFloat64(exporter.score.WithLabelValues("single"))
	if score != 200 {
		t.Fatalf("score = %v, want 200", score)
	}

	histCount, err := histogramSampleCount(exporter.runDurationSeconds.WithLabelValues("test.null", "4"))
	if err != nil {
		t.Fatalf("histogramSampleCount failed: %v", err)
	}
	if histCount != 2 {
		t.Fatalf("duration sample count = %d, want 2", histCount)
	}
}

func TestMetricsExporter_EmptyLabelsFallBack(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordWorkloadPanic("", nil)
	exporter.RecordScore("", 3)

	if got := testutil.ToFloat64(exporter.workloadPanicTotal.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("panic total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(exporter.score.WithLabelValues("unknown")); got != 3 {
		t.Fatalf("score = %v, want 3", got)
	}
}

func TestMetricsExporter_AlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()
	first, err := NewMetricsExporter("markbench", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("first NewMetricsExporter failed: %v", err)
	}
	second, err := NewMetricsExporter("markbench", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("second NewMetricsExporter failed: %v", err)
	}

	first.RecordWorkloadPanic("test.salt", nil)
	second.RecordWorkloadPanic("test.salt", nil)

	got := testutil.ToFloat64(first.workloadPanicTotal.WithLabelValues("test.salt"))
	if got != 2 {
		t.Fatalf("shared panic counter = %v, want 2", got)
	}
}

func TestMetricsExporter_NilReceiver(t *testing.T) {
	var exporter *MetricsExporter
	exporter.RecordRun("test.null", 1, time.Second, 1)
	exporter.RecordWorkloadPanic("test.null", nil)
	exporter.RecordScore("all", 1)
}

func histogramSampleCount(observer prom.Observer) (uint64, error) {
	collector, ok := observer.(prom.Collector)
	if !ok {
		return 0, nil
	}

	metricCh := make(chan prom.Metric, 1)
	collector.Collect(metricCh)
	close(metricCh)
	for metric := range metricCh {
		msg := &dto.Metric{}
		if err := metric.Write(msg); err != nil {
			return 0, err
		}
		if msg.Histogram != nil {
			return msg.Histogram.GetSampleCount(), nil
		}
	}
	return 0, nil
}
