package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APICollector bundles Prometheus metrics for the HTTP API surface and
// provides helpers to wire them into route handlers.
type APICollector struct {
	gatherer prometheus.Gatherer

	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
	InFlight  prometheus.Gauge

	CatalogTransceivers   prometheus.Gauge
	CatalogAntennas       prometheus.Gauge
	CatalogGroundStations prometheus.Gauge
	CatalogBands          prometheus.Gauge
	RunsStored            prometheus.Gauge
}

// NewAPICollector registers API Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewAPICollector(reg prometheus.Registerer) (*APICollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total number of handled API requests, labeled by route, method, and HTTP status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "api_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "api_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	inFlight, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "api_requests_in_flight",
		Help: "Number of API requests currently being served.",
	}), "api_requests_in_flight")
	if err != nil {
		return nil, err
	}

	transceivers, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_transceivers",
		Help: "Number of transceiver datasheets in the component catalog.",
	}), "catalog_transceivers")
	if err != nil {
		return nil, err
	}
	antennas, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_antennas",
		Help: "Number of antenna datasheets in the component catalog.",
	}), "catalog_antennas")
	if err != nil {
		return nil, err
	}
	groundStations, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_ground_stations",
		Help: "Number of ground station datasheets in the component catalog.",
	}), "catalog_ground_stations")
	if err != nil {
		return nil, err
	}
	bands, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_bands",
		Help: "Number of frequency band allocations in the component catalog.",
	}), "catalog_bands")
	if err != nil {
		return nil, err
	}
	runsStored, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_runs_stored",
		Help: "Current number of completed simulation runs retained in memory.",
	}), "simulation_runs_stored")
	if err != nil {
		return nil, err
	}

	return &APICollector{
		gatherer:              gatherer,
		Requests:              requests,
		Durations:             durations,
		InFlight:              inFlight,
		CatalogTransceivers:   transceivers,
		CatalogAntennas:       antennas,
		CatalogGroundStations: groundStations,
		CatalogBands:          bands,
		RunsStored:            runsStored,
	}, nil
}

// Middleware records request counts and durations for a routed handler. It
// must wrap handlers registered on the mux so the matched route pattern is
// available on the request.
func (c *APICollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}
		if c.InFlight != nil {
			c.InFlight.Inc()
			defer c.InFlight.Dec()
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := RoutePattern(r)
		method := r.Method
		code := strconv.Itoa(rec.status)

		if c.Requests != nil {
			c.Requests.WithLabelValues(route, method, code).Inc()
		}
		if c.Durations != nil {
			c.Durations.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *APICollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetCatalogCounts publishes the catalog inventory sizes.
func (c *APICollector) SetCatalogCounts(transceivers, antennas, groundStations, bands int) {
	if c == nil {
		return
	}
	if c.CatalogTransceivers != nil {
		c.CatalogTransceivers.Set(float64(transceivers))
	}
	if c.CatalogAntennas != nil {
		c.CatalogAntennas.Set(float64(antennas))
	}
	if c.CatalogGroundStations != nil {
		c.CatalogGroundStations.Set(float64(groundStations))
	}
	if c.CatalogBands != nil {
		c.CatalogBands.Set(float64(bands))
	}
}

// SetRunCount satisfies the run store's metrics recorder interface so the
// store can drive the gauge directly from its mutators.
func (c *APICollector) SetRunCount(stored int) {
	if c == nil || c.RunsStored == nil {
		return
	}
	c.RunsStored.Set(float64(stored))
}

// RoutePattern returns the mux pattern that matched the request, without the
// leading method qualifier. It returns "unknown" for unrouted requests.
func RoutePattern(r *http.Request) string {
	if r == nil || r.Pattern == "" {
		return "unknown"
	}
	pattern := r.Pattern
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}
	if pattern == "" {
		return "unknown"
	}
	return pattern
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
