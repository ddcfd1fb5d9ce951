package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimulationCollector exposes pass-simulation Prometheus metrics.
type SimulationCollector struct {
	gatherer prometheus.Gatherer

	RunDuration           prometheus.Histogram
	RunsTotal             prometheus.Counter
	RunErrorsTotal        prometheus.Counter
	WindowsPerRun         prometheus.Histogram
	SamplesTotal          prometheus.Counter
	LastPassCount         prometheus.Gauge
	LastDataVolumeMegabit prometheus.Gauge
}

// NewSimulationCollector registers simulation metrics against the provided registerer.
func NewSimulationCollector(reg prometheus.Registerer) (*SimulationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_run_duration_seconds",
		Help:    "Wall-clock duration of full pass-simulation runs.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
	runHistogram, err := registerHistogram(reg, runHistogram, "simulation_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Cumulative number of completed pass-simulation runs.",
	})
	runs, err = registerCounter(reg, runs, "simulation_runs_total")
	if err != nil {
		return nil, err
	}

	runErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_run_errors_total",
		Help: "Cumulative number of pass-simulation runs that failed.",
	})
	runErrors, err = registerCounter(reg, runErrors, "simulation_run_errors_total")
	if err != nil {
		return nil, err
	}

	windows := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_windows_per_run",
		Help:    "Contact windows found per pass-simulation run.",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})
	windows, err = registerHistogram(reg, windows, "simulation_windows_per_run")
	if err != nil {
		return nil, err
	}

	samples := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_samples_total",
		Help: "Cumulative number of pass samples evaluated across runs.",
	})
	samples, err = registerCounter(reg, samples, "simulation_samples_total")
	if err != nil {
		return nil, err
	}

	passCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_last_pass_count",
		Help: "Number of contact windows found by the most recent run.",
	})
	passCount, err = registerGauge(reg, passCount, "simulation_last_pass_count")
	if err != nil {
		return nil, err
	}

	dataVolume := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_last_data_volume_megabits",
		Help: "Deliverable data volume computed by the most recent run.",
	})
	dataVolume, err = registerGauge(reg, dataVolume, "simulation_last_data_volume_megabits")
	if err != nil {
		return nil, err
	}

	return &SimulationCollector{
		gatherer:              gatherer,
		RunDuration:           runHistogram,
		RunsTotal:             runs,
		RunErrorsTotal:        runErrors,
		WindowsPerRun:         windows,
		SamplesTotal:          samples,
		LastPassCount:         passCount,
		LastDataVolumeMegabit: dataVolume,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SimulationCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveRunDuration records the wall-clock duration of a simulation run.
func (c *SimulationCollector) ObserveRunDuration(d time.Duration) {
	if c == nil || c.RunDuration == nil {
		return
	}
	c.RunDuration.Observe(d.Seconds())
}

// IncRuns increments the completed-run counter.
func (c *SimulationCollector) IncRuns() {
	if c == nil || c.RunsTotal == nil {
		return
	}
	c.RunsTotal.Inc()
}

// IncRunErrors increments the failed-run counter.
func (c *SimulationCollector) IncRunErrors() {
	if c == nil || c.RunErrorsTotal == nil {
		return
	}
	c.RunErrorsTotal.Inc()
}

// ObserveWindows records the contact-window count of a completed run.
func (c *SimulationCollector) ObserveWindows(n int) {
	if c == nil || c.WindowsPerRun == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	c.WindowsPerRun.Observe(float64(n))
}

// AddSamples adds evaluated pass samples to the cumulative counter.
func (c *SimulationCollector) AddSamples(n int) {
	if c == nil || c.SamplesTotal == nil || n <= 0 {
		return
	}
	c.SamplesTotal.Add(float64(n))
}

// SetLastRun publishes headline figures from the most recent run.
func (c *SimulationCollector) SetLastRun(passCount int, totalDataBits float64) {
	if c == nil {
		return
	}
	if passCount < 0 {
		passCount = 0
	}
	if totalDataBits < 0 {
		totalDataBits = 0
	}
	if c.LastPassCount != nil {
		c.LastPassCount.Set(float64(passCount))
	}
	if c.LastDataVolumeMegabit != nil {
		c.LastDataVolumeMegabit.Set(totalDataBits / 1e6)
	}
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
