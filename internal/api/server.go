// internal/api/server.go
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/internal/observability"
	"github.com/signalsfoundry/satlink-simulator/internal/runs"
)

// maxBodyBytes bounds request bodies; mission configs are a few KB.
const maxBodyBytes = 1 << 20

// Server exposes the simulation engine and the component catalog over a
// JSON HTTP API.
type Server struct {
	log      logging.Logger
	registry *catalog.Registry
	store    *runs.Store

	metrics *observability.APICollector
	sim     *observability.SimulationCollector
}

// ServerOption customises Server construction.
type ServerOption func(*Server)

// WithMetrics attaches the API request collector; its gatherer also backs
// the /metrics endpoint.
func WithMetrics(c *observability.APICollector) ServerOption {
	return func(s *Server) {
		s.metrics = c
	}
}

// WithSimulationMetrics attaches the simulation run collector.
func WithSimulationMetrics(c *observability.SimulationCollector) ServerOption {
	return func(s *Server) {
		s.sim = c
	}
}

// NewServer wires the API to the shared catalog registry and run store.
// registry may be nil for a fully inline deployment; store may be nil when
// run retention is not wanted.
func NewServer(registry *catalog.Registry, store *runs.Store, log logging.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = logging.Noop()
	}
	srv := &Server{
		log:      log,
		registry: registry,
		store:    store,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(srv)
		}
	}
	return srv
}

// Routes builds the full handler tree. Every /v1 route runs behind the
// recovery, request-ID, tracing, and metrics middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, Chain(h,
			RecoveryMiddleware(s.log),
			RequestIDMiddleware(s.log),
			TracingMiddleware(),
			s.requestMetrics,
		))
	}

	route("POST /v1/simulate", s.handleSimulate)
	route("POST /v1/linkbudget", s.handleLinkBudget)
	route("POST /v1/passes", s.handlePasses)

	route("GET /v1/runs", s.handleListRuns)
	route("GET /v1/runs/{id}", s.handleGetRun)

	route("GET /v1/catalog/transceivers", s.handleListTransceivers)
	route("GET /v1/catalog/transceivers/{name}", s.handleGetTransceiver)
	route("GET /v1/catalog/antennas", s.handleListAntennas)
	route("GET /v1/catalog/antennas/{name}", s.handleGetAntenna)
	route("GET /v1/catalog/groundstations", s.handleListGroundStations)
	route("GET /v1/catalog/groundstations/{name}", s.handleGetGroundStation)
	route("GET /v1/catalog/bands", s.handleListBands)
	route("GET /v1/catalog/bands/{name}", s.handleGetBand)
	route("GET /v1/catalog/missions", s.handleListMissions)
	route("GET /v1/catalog/missions/{name}", s.handleGetMission)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metricsHandler())

	return mux
}

// requestMetrics is the metrics middleware, nil-safe when no collector is
// attached.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return s.metrics.Middleware(next)
}

func (s *Server) metricsHandler() http.Handler {
	if s.metrics != nil {
		return s.metrics.Handler()
	}
	return promhttp.Handler()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
