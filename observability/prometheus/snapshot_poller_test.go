package prometheus

import (
	"context"
	"testing"
	"time"

	"github.com/Swind/markbench/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type engineStub struct {
	stats core.EngineStats
}

func (s engineStub) Stats() core.EngineStats { return s.stats }

type runnerStub struct {
	stats core.RunnerStats
}

func (s runnerStub) Stats() core.RunnerStats { return s.stats }

func TestSnapshotPoller_CollectsEngineAndRunnerStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddEngine("engine-a", engineStub{stats: core.EngineStats{
		Name:                "engine-a",
		HardwareConcurrency: 8,
		ActiveLanes:         8,
		RunsCompleted:       5,
		RunsFailed:          1,
	}})
	poller.AddRunner("suite-a", runnerStub{stats: core.RunnerStats{
		Total:     9,
		Completed: 3,
		Failed:    1,
		Running:   true,
		Single:    120.5,
		AllThread: 800,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		lanes := testutil.ToFloat64(poller.engineActiveLanes.WithLabelValues("engine-a"))
		completed := testutil.ToFloat64(poller.runnerCompleted.WithLabelValues("suite-a"))
		return lanes == 8 && completed == 3
	})

	if got := testutil.ToFloat64(poller.engineFailed.WithLabelValues("engine-a")); got != 1 {
		t.Fatalf("engine failed gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.runnerRunning.WithLabelValues("suite-a")); got != 1 {
		t.Fatalf("suite running gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.runnerScore.WithLabelValues("suite-a", "all")); got != 800 {
		t.Fatalf("suite all score = %v, want 800", got)
	}
}

func TestSnapshotPoller_WithRealEngine(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	engine := core.NewEngine(core.EngineOptions{Name: "real", HardwareConcurrency: 2})
	poller.AddEngine("", engine)

	_, err = engine.Run(context.Background(), core.RunRequest{
		Entry:    core.Entry{ID: "noop", Run: func() {}},
		Threads:  1,
		Duration: 5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		return testutil.ToFloat64(poller.engineCompleted.WithLabelValues("engine")) == 1
	})
	if got := testutil.ToFloat64(poller.engineHardware.WithLabelValues("engine")); got != 2 {
		t.Fatalf("hardware gauge = %v, want 2", got)
	}
}

func TestSnapshotPoller_StartStop_Idempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}

func assertEventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
