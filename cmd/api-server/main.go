package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/internal/api"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/internal/observability"
	"github.com/signalsfoundry/satlink-simulator/internal/runs"
)

// Config carries the server settings resolved from flags.
type Config struct {
	ListenAddress  string
	MetricsAddress string
	CatalogDir     string
	RunCapacity    int
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP address the API server listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	catalogDir := flag.String("catalog-dir", "", "directory overlaying the built-in component catalog")
	runCapacity := flag.Int("run-capacity", runs.DefaultCapacity, "number of completed runs kept in memory")
	flag.Parse()

	cfg := Config{
		ListenAddress:  *addr,
		MetricsAddress: *metricsAddr,
		CatalogDir:     *catalogDir,
		RunCapacity:    *runCapacity,
	}

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Error(ctx, "failed to listen", logging.String("addr", cfg.ListenAddress), logging.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(ctx, cfg, log, lis); err != nil {
		log.Error(ctx, "API server exited", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the catalog, run store, collectors and HTTP routes, serves until
// ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg Config, log logging.Logger, lis net.Listener) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("initialise tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewAPICollector(nil)
	if err != nil {
		return fmt.Errorf("initialise metrics collector: %w", err)
	}
	simCollector, err := observability.NewSimulationCollector(nil)
	if err != nil {
		return fmt.Errorf("initialise simulation metrics: %w", err)
	}

	metricsSrv := serveMetrics(cfg.MetricsAddress, collector, log)

	reg := catalog.New()
	if cfg.CatalogDir != "" {
		reg = catalog.NewWithOverlay(cfg.CatalogDir)
		log.Info(ctx, "catalog overlay active", logging.String("dir", cfg.CatalogDir))
	}
	publishCatalogCounts(ctx, reg, collector, log)

	store := runs.NewStore(cfg.RunCapacity, log, runs.WithMetricsRecorder(collector))

	server := api.NewServer(reg, store, log,
		api.WithMetrics(collector),
		api.WithSimulationMetrics(simCollector),
	)

	srv := &http.Server{
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info(ctx, "starting API server", logging.String("addr", lis.Addr().String()))
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return <-errCh
}

func serveMetrics(addr string, collector *observability.APICollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

// publishCatalogCounts seeds the catalog gauges so dashboards see the
// inventory before the first request arrives.
func publishCatalogCounts(ctx context.Context, reg *catalog.Registry, collector *observability.APICollector, log logging.Logger) {
	count := func(names []string, err error, category string) int {
		if err != nil {
			log.Warn(ctx, "failed to count catalog entries",
				logging.String("category", category), logging.String("error", err.Error()))
			return 0
		}
		return len(names)
	}

	transceivers, err := reg.Transceivers()
	nTrx := count(transceivers, err, "transceivers")
	antennas, err := reg.Antennas()
	nAnt := count(antennas, err, "antennas")
	stations, err := reg.GroundStations()
	nGS := count(stations, err, "groundstations")
	bands, err := reg.Bands()
	nBand := count(bands, err, "bands")

	collector.SetCatalogCounts(nTrx, nAnt, nGS, nBand)
	log.Info(ctx, "catalog loaded",
		logging.Int("transceivers", nTrx),
		logging.Int("antennas", nAnt),
		logging.Int("ground_stations", nGS),
		logging.Int("bands", nBand),
	)
}
