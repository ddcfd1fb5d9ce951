// core/windows.go
package core

import (
	"fmt"
	"math"
)

// ContactWindow is one maximal interval during which the satellite stays at
// or above the station's elevation mask. Times are offsets from simulation
// start, in seconds.
//
// Invariants: RiseTimeS < SetTimeS, MaxElevationTimeS within [rise, set],
// and windows produced by a single scan are strictly ordered and
// non-overlapping.
type ContactWindow struct {
	RiseTimeS         float64
	SetTimeS          float64
	MaxElevationDeg   float64
	MaxElevationTimeS float64

	// Samples is the per-instant series filled in by the simulation
	// engine; a bare geometry scan leaves it nil.
	Samples []PassSample
}

// DurationS returns the window length in seconds.
func (w ContactWindow) DurationS() float64 {
	return w.SetTimeS - w.RiseTimeS
}

// MinMarginDB returns the worst link margin across the window's samples,
// or zero when the window has not been evaluated.
func (w ContactWindow) MinMarginDB() float64 {
	if len(w.Samples) == 0 {
		return 0
	}
	min := w.Samples[0].MarginDB
	for _, s := range w.Samples[1:] {
		if s.MarginDB < min {
			min = s.MarginDB
		}
	}
	return min
}

// MaxMarginDB returns the best link margin across the window's samples, or
// zero when the window has not been evaluated.
func (w ContactWindow) MaxMarginDB() float64 {
	if len(w.Samples) == 0 {
		return 0
	}
	max := w.Samples[0].MarginDB
	for _, s := range w.Samples[1:] {
		if s.MarginDB > max {
			max = s.MarginDB
		}
	}
	return max
}

// PeakDopplerHz returns the largest absolute Doppler shift seen across the
// window's samples.
func (w ContactWindow) PeakDopplerHz() float64 {
	var peak float64
	for _, s := range w.Samples {
		if abs := math.Abs(s.DopplerHz); abs > peak {
			peak = abs
		}
	}
	return peak
}

// DataVolumeBits returns the volume carried across the window's samples.
func (w ContactWindow) DataVolumeBits() float64 {
	var bits float64
	for _, s := range w.Samples {
		bits += s.DataBits
	}
	return bits
}

// ContactWindowFinder scans a time span for visibility windows against one
// station.
type ContactWindowFinder struct {
	prop  Propagator
	frame *GroundStationFrame
}

// NewContactWindowFinder pairs a propagator with a station frame.
func NewContactWindowFinder(prop Propagator, frame *GroundStationFrame) *ContactWindowFinder {
	return &ContactWindowFinder{prop: prop, frame: frame}
}

// FindWindows samples elevation at fixed step dtS across [0, durationS] and
// returns the visibility windows in time order.
//
// The sampling step is coarse relative to the true crossing instants, so
// rise and set times are refined by linear interpolation of elevation
// between the bracketing samples. That is an approximation of the nonlinear
// elevation curve whose error shrinks with dtS; it is not an exact root
// find. Two boundary policies apply: a pass already in progress at t=0 gets
// rise=0, and a pass still in progress at the end gets set=durationS, so no
// window ever extends outside the scanned span.
func (f *ContactWindowFinder) FindWindows(durationS, dtS float64) ([]ContactWindow, error) {
	if durationS <= 0 || math.IsNaN(durationS) {
		return nil, fmt.Errorf("%w: scan duration must be positive, got %g s", ErrConfiguration, durationS)
	}
	if dtS <= 0 || math.IsNaN(dtS) {
		return nil, fmt.Errorf("%w: scan step must be positive, got %g s", ErrConfiguration, dtS)
	}

	threshold := f.frame.Station().MinElevationDeg

	var windows []ContactWindow
	var open *ContactWindow

	prevT := 0.0
	prevEl, err := f.elevationAt(0)
	if err != nil {
		return nil, err
	}
	if prevEl >= threshold {
		open = &ContactWindow{RiseTimeS: 0, MaxElevationDeg: prevEl, MaxElevationTimeS: 0}
	}

	steps := int(math.Ceil(durationS / dtS))
	for i := 1; i <= steps; i++ {
		t := float64(i) * dtS
		if t > durationS {
			t = durationS
		}

		el, err := f.elevationAt(t)
		if err != nil {
			return nil, err
		}

		switch {
		case open == nil && el >= threshold:
			rise := crossingTime(prevT, prevEl, t, el, threshold)
			open = &ContactWindow{RiseTimeS: rise, MaxElevationDeg: el, MaxElevationTimeS: t}
		case open != nil && el < threshold:
			set := crossingTime(prevT, prevEl, t, el, threshold)
			if set > open.RiseTimeS {
				open.SetTimeS = set
				windows = append(windows, *open)
			}
			// A sample sitting exactly on the mask with both
			// neighbours below brackets a zero-length interval;
			// that is not a usable pass.
			open = nil
		case open != nil && el > open.MaxElevationDeg:
			open.MaxElevationDeg = el
			open.MaxElevationTimeS = t
		}

		prevT, prevEl = t, el
	}

	if open != nil {
		open.SetTimeS = durationS
		if open.SetTimeS > open.RiseTimeS {
			windows = append(windows, *open)
		}
	}

	return windows, nil
}

func (f *ContactWindowFinder) elevationAt(t float64) (float64, error) {
	state, err := f.prop.Propagate(t)
	if err != nil {
		return 0, fmt.Errorf("elevation scan at t=%.3f s: %w", t, err)
	}
	return f.frame.Observe(state).ElevationDeg, nil
}

// crossingTime linearly interpolates the instant at which elevation crosses
// the threshold between two bracketing samples.
func crossingTime(t0, el0, t1, el1, threshold float64) float64 {
	if el1 == el0 {
		return t0
	}
	return t0 + (threshold-el0)/(el1-el0)*(t1-t0)
}
