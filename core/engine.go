// core/engine.go
package core

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/signalsfoundry/satlink-simulator/rf"
)

// AtmosphereModel is the attenuation collaborator. Implementations are pure
// functions of frequency and elevation; the engine never calls them with an
// elevation at or below zero.
type AtmosphereModel interface {
	TotalLossDB(freqHz, elevationDeg float64) (float64, error)
}

// LinkBudgetResult is the per-sample outcome of a budget evaluation.
type LinkBudgetResult struct {
	EIRPDBW        float64
	GOverTDBK      float64
	PathLossDB     float64
	COverN0DBHz    float64
	EbN0DB         float64
	RequiredEbN0DB float64
	MarginDB       float64
	LinkCloses     bool
}

// LinkBudget folds the transmit and receive chains into a margin for one
// sample. Pure function of its scalar inputs.
type LinkBudget interface {
	Compute(freqHz, distanceM, atmosphericLossDB float64) (LinkBudgetResult, error)
}

// PassSample is one evaluated instant inside a contact window.
type PassSample struct {
	TimeS        float64
	ElevationDeg float64
	AzimuthDeg   float64
	RangeM       float64
	DopplerHz    float64
	MarginDB     float64
	LinkCloses   bool
	// DataBits is the volume carried in this step: data rate times step
	// when the link closes, zero otherwise. Failed steps drop data, they
	// do not buffer it.
	DataBits float64
}

// PassSimulationResult holds the windows (with their sample series) and the
// mission aggregates for one run. It is owned by that run and read-only
// afterwards.
type PassSimulationResult struct {
	Windows []ContactWindow

	PassCount            int
	TotalContactTimeS    float64
	AveragePassDurationS float64
	TotalDataBits        float64

	// Run parameters, retained for reporting.
	DurationS    float64
	TimeStepS    float64
	ContactStepS float64
	FrequencyHz  float64
	DataRateBps  float64
}

// PassesPerDay normalizes the pass count to a daily rate.
func (r *PassSimulationResult) PassesPerDay() float64 {
	if r.DurationS <= 0 {
		return 0
	}
	return float64(r.PassCount) * 86400 / r.DurationS
}

// Span expresses a simulation length either as wall seconds or as a multiple
// of the propagator's orbital period. Exactly one of the two must be set.
type Span struct {
	seconds float64
	orbits  float64
}

// Seconds builds a Span of a fixed number of seconds.
func Seconds(s float64) Span { return Span{seconds: s} }

// Orbits builds a Span of n orbital periods.
func Orbits(n float64) Span { return Span{orbits: n} }

func (s Span) resolve(periodS float64) (float64, error) {
	switch {
	case s.seconds > 0 && s.orbits > 0:
		return 0, fmt.Errorf("%w: span must be seconds or orbits, not both", ErrConfiguration)
	case s.seconds > 0:
		return s.seconds, nil
	case s.orbits > 0:
		return s.orbits * periodS, nil
	default:
		return 0, fmt.Errorf("%w: span must be positive", ErrConfiguration)
	}
}

// EngineConfig carries the link parameters the engine feeds its
// collaborators, plus execution knobs.
type EngineConfig struct {
	FrequencyHz float64
	DataRateBps float64

	// AtmosphereFloorDeg clamps the elevation handed to the atmosphere
	// model; the simplified slant-path formulas lose validity near the
	// horizon. Defaults to 5 degrees.
	AtmosphereFloorDeg float64

	// Workers bounds concurrent window evaluation. Values below 2 keep
	// the run single-threaded. Output is identical either way; windows
	// are reassembled in time order.
	Workers int
}

// PassSimulationEngine drives the propagator and station frame over a
// mission span, delegates window detection to a ContactWindowFinder, and
// folds the collaborators' per-sample results into pass and mission
// statistics. Runs are deterministic: identical inputs give bit-identical
// results.
type PassSimulationEngine struct {
	prop       Propagator
	frame      *GroundStationFrame
	finder     *ContactWindowFinder
	atmosphere AtmosphereModel
	budget     LinkBudget
	cfg        EngineConfig
}

// NewPassSimulationEngine validates the configuration eagerly. Collaborators
// must be non-nil; frequency and data rate must be positive.
func NewPassSimulationEngine(prop Propagator, frame *GroundStationFrame, atmosphere AtmosphereModel, budget LinkBudget, cfg EngineConfig) (*PassSimulationEngine, error) {
	if prop == nil || frame == nil {
		return nil, fmt.Errorf("%w: engine requires a propagator and a station frame", ErrConfiguration)
	}
	if atmosphere == nil || budget == nil {
		return nil, fmt.Errorf("%w: engine requires atmosphere and link budget collaborators", ErrConfiguration)
	}
	if cfg.FrequencyHz <= 0 || math.IsNaN(cfg.FrequencyHz) {
		return nil, fmt.Errorf("%w: frequency must be positive, got %g Hz", ErrConfiguration, cfg.FrequencyHz)
	}
	if cfg.DataRateBps <= 0 || math.IsNaN(cfg.DataRateBps) {
		return nil, fmt.Errorf("%w: data rate must be positive, got %g bps", ErrConfiguration, cfg.DataRateBps)
	}
	if cfg.AtmosphereFloorDeg <= 0 {
		cfg.AtmosphereFloorDeg = 5
	}
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}

	return &PassSimulationEngine{
		prop:       prop,
		frame:      frame,
		finder:     NewContactWindowFinder(prop, frame),
		atmosphere: atmosphere,
		budget:     budget,
		cfg:        cfg,
	}, nil
}

// Run simulates the span and returns the frozen result. The scan for
// contact windows walks the whole span at the coarser contactDtS; each
// window found is then resampled at dtS. Collaborator failures abort the
// run and propagate with their error chain intact; there is no retry and
// no partial result.
func (e *PassSimulationEngine) Run(ctx context.Context, span Span, dtS, contactDtS float64) (*PassSimulationResult, error) {
	durationS, err := span.resolve(e.prop.Period())
	if err != nil {
		return nil, err
	}
	if dtS <= 0 || math.IsNaN(dtS) {
		return nil, fmt.Errorf("%w: pass time step must be positive, got %g s", ErrConfiguration, dtS)
	}
	if contactDtS <= 0 || math.IsNaN(contactDtS) {
		return nil, fmt.Errorf("%w: contact scan step must be positive, got %g s", ErrConfiguration, contactDtS)
	}

	windows, err := e.finder.FindWindows(durationS, contactDtS)
	if err != nil {
		return nil, err
	}

	if e.cfg.Workers > 1 && len(windows) > 1 {
		err = e.evaluateWindowsParallel(ctx, windows, dtS)
	} else {
		err = e.evaluateWindowsSerial(ctx, windows, dtS)
	}
	if err != nil {
		return nil, err
	}

	result := &PassSimulationResult{
		Windows:      windows,
		PassCount:    len(windows),
		DurationS:    durationS,
		TimeStepS:    dtS,
		ContactStepS: contactDtS,
		FrequencyHz:  e.cfg.FrequencyHz,
		DataRateBps:  e.cfg.DataRateBps,
	}
	for _, w := range windows {
		result.TotalContactTimeS += w.DurationS()
		for _, s := range w.Samples {
			result.TotalDataBits += s.DataBits
		}
	}
	if result.PassCount > 0 {
		result.AveragePassDurationS = result.TotalContactTimeS / float64(result.PassCount)
	}
	return result, nil
}

func (e *PassSimulationEngine) evaluateWindowsSerial(ctx context.Context, windows []ContactWindow, dtS float64) error {
	for i := range windows {
		if err := ctx.Err(); err != nil {
			return err
		}
		samples, err := e.evaluateWindow(windows[i], dtS)
		if err != nil {
			return err
		}
		windows[i].Samples = samples
	}
	return nil
}

// evaluateWindowsParallel fans windows out to a bounded worker pool. Every
// window is independent, so this cannot change results, only wall time.
func (e *PassSimulationEngine) evaluateWindowsParallel(ctx context.Context, windows []ContactWindow, dtS float64) error {
	sem := make(chan struct{}, e.cfg.Workers)
	errs := make([]error, len(windows))
	var wg sync.WaitGroup

	for i := range windows {
		if err := ctx.Err(); err != nil {
			return err
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			samples, err := e.evaluateWindow(windows[i], dtS)
			if err != nil {
				errs[i] = err
				return
			}
			windows[i].Samples = samples
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// evaluateWindow re-samples one window at dtS between its refined rise and
// set times. Every window yields at least its two boundary samples.
func (e *PassSimulationEngine) evaluateWindow(w ContactWindow, dtS float64) ([]PassSample, error) {
	times := make([]float64, 0, int((w.SetTimeS-w.RiseTimeS)/dtS)+2)
	for k := 0; ; k++ {
		t := w.RiseTimeS + float64(k)*dtS
		if t >= w.SetTimeS {
			break
		}
		times = append(times, t)
	}
	times = append(times, w.SetTimeS)

	samples := make([]PassSample, 0, len(times))
	for _, t := range times {
		sample, err := e.evaluateSample(t, dtS)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (e *PassSimulationEngine) evaluateSample(t, dtS float64) (PassSample, error) {
	state, err := e.prop.Propagate(t)
	if err != nil {
		return PassSample{}, fmt.Errorf("propagate at t=%.3f s: %w", t, err)
	}
	obs := e.frame.Observe(state)

	// Interpolated boundaries can sit marginally below the mask; the
	// atmosphere models also lose validity near the horizon. Clamp the
	// elevation for the loss call only, never the reported geometry.
	atmosElevation := obs.ElevationDeg
	if atmosElevation < e.cfg.AtmosphereFloorDeg {
		atmosElevation = e.cfg.AtmosphereFloorDeg
	}
	atmosLossDB, err := e.atmosphere.TotalLossDB(e.cfg.FrequencyHz, atmosElevation)
	if err != nil {
		return PassSample{}, fmt.Errorf("atmospheric loss at t=%.3f s: %w", t, err)
	}

	lb, err := e.budget.Compute(e.cfg.FrequencyHz, obs.RangeM, atmosLossDB)
	if err != nil {
		return PassSample{}, fmt.Errorf("link budget at t=%.3f s: %w", t, err)
	}

	// Negative range rate means the satellite is approaching, which
	// compresses the wavelength and raises the received frequency.
	doppler := -e.cfg.FrequencyHz * e.frame.RangeRateMS(state) / rf.SpeedOfLightMS

	sample := PassSample{
		TimeS:        t,
		ElevationDeg: obs.ElevationDeg,
		AzimuthDeg:   obs.AzimuthDeg,
		RangeM:       obs.RangeM,
		DopplerHz:    doppler,
		MarginDB:     lb.MarginDB,
		LinkCloses:   lb.LinkCloses,
	}
	if lb.LinkCloses {
		sample.DataBits = e.cfg.DataRateBps * dtS
	}
	return sample, nil
}
