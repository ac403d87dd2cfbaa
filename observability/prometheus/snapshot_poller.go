package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/Swind/markbench/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// EngineSnapshotProvider provides current engine stats snapshots.
type EngineSnapshotProvider interface {
	Stats() core.EngineStats
}

// RunnerSnapshotProvider provides current suite runner stats snapshots.
type RunnerSnapshotProvider interface {
	Stats() core.RunnerStats
}

// SnapshotPoller periodically exports engine/runner Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	enginesMu sync.RWMutex
	engines   map[string]EngineSnapshotProvider

	runnersMu sync.RWMutex
	runners   map[string]RunnerSnapshotProvider

	engineActiveLanes *prom.GaugeVec
	engineHardware    *prom.GaugeVec
	engineCompleted   *prom.GaugeVec
	engineFailed      *prom.GaugeVec

	runnerTotal     *prom.GaugeVec
	runnerCompleted *prom.GaugeVec
	runnerFailed    *prom.GaugeVec
	runnerRunning   *prom.GaugeVec
	runnerScore     *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	engineActiveLanes := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "engine_active_lanes",
		Help:      "Number of lanes currently launched per engine.",
	}, []string{"engine"})
	engineHardware := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "engine_hardware_concurrency",
		Help:      "Lane ceiling per engine.",
	}, []string{"engine"})
	engineCompleted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "engine_runs_completed",
		Help:      "Completed run count snapshot per engine.",
	}, []string{"engine"})
	engineFailed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "engine_runs_failed",
		Help:      "Failed run count snapshot per engine.",
	}, []string{"engine"})

	runnerTotal := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "suite_workloads",
		Help:      "Number of workloads in the suite.",
	}, []string{"suite"})
	runnerCompleted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "suite_completed",
		Help:      "Workloads completed so far.",
	}, []string{"suite"})
	runnerFailed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "suite_failed",
		Help:      "Workloads failed so far.",
	}, []string{"suite"})
	runnerRunning := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "suite_running",
		Help:      "Suite running state (1=running, 0=idle).",
	}, []string{"suite"})
	runnerScore := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "markbench",
		Name:      "suite_score",
		Help:      "Running score total per suite and kind.",
	}, []string{"suite", "kind"})

	var err error
	if engineActiveLanes, err = registerCollector(reg, engineActiveLanes); err != nil {
		return nil, err
	}
	if engineHardware, err = registerCollector(reg, engineHardware); err != nil {
		return nil, err
	}
	if engineCompleted, err = registerCollector(reg, engineCompleted); err != nil {
		return nil, err
	}
	if engineFailed, err = registerCollector(reg, engineFailed); err != nil {
		return nil, err
	}
	if runnerTotal, err = registerCollector(reg, runnerTotal); err != nil {
		return nil, err
	}
	if runnerCompleted, err = registerCollector(reg, runnerCompleted); err != nil {
		return nil, err
	}
	if runnerFailed, err = registerCollector(reg, runnerFailed); err != nil {
		return nil, err
	}
	if runnerRunning, err = registerCollector(reg, runnerRunning); err != nil {
		return nil, err
	}
	if runnerScore, err = registerCollector(reg, runnerScore); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:          interval,
		engines:           make(map[string]EngineSnapshotProvider),
		runners:           make(map[string]RunnerSnapshotProvider),
		engineActiveLanes: engineActiveLanes,
		engineHardware:    engineHardware,
		engineCompleted:   engineCompleted,
		engineFailed:      engineFailed,
		runnerTotal:       runnerTotal,
		runnerCompleted:   runnerCompleted,
		runnerFailed:      runnerFailed,
		runnerRunning:     runnerRunning,
		runnerScore:       runnerScore,
	}, nil
}

// AddEngine adds or replaces an engine snapshot provider by name.
func (p *SnapshotPoller) AddEngine(name string, provider EngineSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "engine")
	p.enginesMu.Lock()
	p.engines[name] = provider
	p.enginesMu.Unlock()
}

// AddRunner adds or replaces a runner snapshot provider by name.
func (p *SnapshotPoller) AddRunner(name string, provider RunnerSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "suite")
	p.runnersMu.Lock()
	p.runners[name] = provider
	p.runnersMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			// Final snapshot so the closing scores are visible.
			p.collectOnce()
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.enginesMu.RLock()
	for name, provider := range p.engines {
		stats := provider.Stats()
		p.engineActiveLanes.WithLabelValues(name).Set(float64(stats.ActiveLanes))
		p.engineHardware.WithLabelValues(name).Set(float64(stats.HardwareConcurrency))
		p.engineCompleted.WithLabelValues(name).Set(float64(stats.RunsCompleted))
		p.engineFailed.WithLabelValues(name).Set(float64(stats.RunsFailed))
	}
	p.enginesMu.RUnlock()

	p.runnersMu.RLock()
	for name, provider := range p.runners {
		stats := provider.Stats()
		p.runnerTotal.WithLabelValues(name).Set(float64(stats.Total))
		p.runnerCompleted.WithLabelValues(name).Set(float64(stats.Completed))
		p.runnerFailed.WithLabelValues(name).Set(float64(stats.Failed))
		if stats.Running {
			p.runnerRunning.WithLabelValues(name).Set(1)
		} else {
			p.runnerRunning.WithLabelValues(name).Set(0)
		}
		p.runnerScore.WithLabelValues(name, "single").Set(stats.Single)
		p.runnerScore.WithLabelValues(name, "all").Set(stats.AllThread)
	}
	p.runnersMu.RUnlock()
}
