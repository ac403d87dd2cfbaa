package markbench

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/workloads"
)

// TestGlobalEngine_Lifecycle verifies init, get and shutdown of the global engine
// Given: No global engine
// When: It is initialized twice and then shut down
// Then: The first instance is kept and Get panics after shutdown
func TestGlobalEngine_Lifecycle(t *testing.T) {
	// Arrange
	InitGlobalEngine(EngineOptions{HardwareConcurrency: 2})
	defer ShutdownGlobalEngine()

	// Act
	first := GetGlobalEngine()
	InitGlobalEngine(EngineOptions{HardwareConcurrency: 4})
	second := GetGlobalEngine()

	// Assert
	if first != second {
		t.Fatal("InitGlobalEngine replaced an existing engine")
	}
	if first.Name() != "global-engine" {
		t.Fatalf("Name() = %q, want global-engine", first.Name())
	}
	if first.HardwareConcurrency() != 2 {
		t.Fatalf("HardwareConcurrency() = %d, want 2", first.HardwareConcurrency())
	}

	ShutdownGlobalEngine()
	defer func() {
		if recover() == nil {
			t.Fatal("GetGlobalEngine did not panic after shutdown")
		}
	}()
	GetGlobalEngine()
}

func TestRunSingle_RegisteredWorkload(t *testing.T) {
	InitGlobalEngine(EngineOptions{HardwareConcurrency: 2})
	defer ShutdownGlobalEngine()

	result, err := RunSingle(context.Background(), "test.null", 0, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("RunSingle failed: %v", err)
	}
	if result.Threads() != 2 {
		t.Fatalf("Threads() = %d, want 2", result.Threads())
	}
	if result.Requested != 0 {
		t.Fatalf("Requested = %d, want 0", result.Requested)
	}
	for i, c := range result.Counts {
		if c == 0 {
			t.Fatalf("lane %d counted nothing", i)
		}
	}
}

func TestRunSingle_UnknownWorkload(t *testing.T) {
	InitGlobalEngine(EngineOptions{})
	defer ShutdownGlobalEngine()

	_, err := RunSingle(context.Background(), "test.missing", 1, time.Millisecond)
	if !errors.Is(err, ErrUnknownWorkload) {
		t.Fatalf("err = %v, want ErrUnknownWorkload", err)
	}
}

func TestRunSuite_Raw(t *testing.T) {
	InitGlobalEngine(EngineOptions{HardwareConcurrency: 2, Duration: 10 * time.Millisecond})
	defer ShutdownGlobalEngine()

	report, err := RunSuite(context.Background(), "raw", nil, RunnerOptions{})
	if err != nil {
		t.Fatalf("RunSuite failed: %v", err)
	}
	if len(report.Order) != 2 {
		t.Fatalf("len(Order) = %d, want 2", len(report.Order))
	}
	if len(report.Results) != 4 {
		t.Fatalf("len(Results) = %d, want 4", len(report.Results))
	}
	if report.Scores.SingleThread <= 0 || report.Scores.AllThread <= 0 {
		t.Fatalf("scores = %+v, want both positive", report.Scores)
	}
	if len(report.Scores.PerLane) != 2 {
		t.Fatalf("len(PerLane) = %d, want 2", len(report.Scores.PerLane))
	}
}

// TestRunSuite_EmptyNameUsesDefaultSuite verifies the runner is labelled with the resolved suite
// Given: An empty suite name and no runner name
// When: RunSuite runs
// Then: The default suite runs and its logs carry suite=now
func TestRunSuite_EmptyNameUsesDefaultSuite(t *testing.T) {
	InitGlobalEngine(EngineOptions{HardwareConcurrency: 2, Duration: 5 * time.Millisecond})
	defer ShutdownGlobalEngine()

	var buf bytes.Buffer
	report, err := RunSuite(context.Background(), "", nil, RunnerOptions{
		Logger: core.NewDefaultLoggerTo(&buf, slog.LevelInfo),
	})
	if err != nil {
		t.Fatalf("RunSuite failed: %v", err)
	}

	want, err := workloads.Lookup(DefaultSuite)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(report.Order) != len(want) {
		t.Fatalf("len(Order) = %d, want %d", len(report.Order), len(want))
	}
	if out := buf.String(); !strings.Contains(out, "suite="+DefaultSuite) {
		t.Fatalf("logs %q do not name suite %q", out, DefaultSuite)
	}
}

func TestRunSuite_UnknownSuite(t *testing.T) {
	InitGlobalEngine(EngineOptions{})
	defer ShutdownGlobalEngine()

	_, err := RunSuite(context.Background(), "999", nil, RunnerOptions{})
	if !errors.Is(err, ErrUnknownSuite) {
		t.Fatalf("err = %v, want ErrUnknownSuite", err)
	}
}
