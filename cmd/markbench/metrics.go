package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Swind/markbench/core"
	obsprom "github.com/Swind/markbench/observability/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsServer serves /metrics for the lifetime of one suite run.
type metricsServer struct {
	exporter *obsprom.MetricsExporter
	poller   *obsprom.SnapshotPoller
	server   *http.Server
	logger   core.Logger
}

func startMetricsServer(ctx context.Context, addr string, logger core.Logger) (*metricsServer, error) {
	reg := prom.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := obsprom.NewMetricsExporter("markbench", reg, obsprom.ExporterOptions{
		DurationBuckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
	if err != nil {
		return nil, err
	}
	poller, err := obsprom.NewSnapshotPoller(reg, time.Second)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", core.F("addr", addr), core.F("error", err))
		}
	}()
	poller.Start(ctx)
	logger.Info("Serving metrics", core.F("addr", addr))

	return &metricsServer{exporter: exporter, poller: poller, server: server, logger: logger}, nil
}

func (m *metricsServer) Close() {
	m.poller.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		m.logger.Warn("Metrics server shutdown", core.F("error", err))
	}
}
