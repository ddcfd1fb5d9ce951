// atmosphere/scintillation.go
package atmosphere

import "math"

// ScintillationIndex returns the ITU-R P.531 flavored S4 index. S4 falls as
// f^-1.5 from a 0.6 baseline at 1.5 GHz, scales with the square root of the
// 10.7 cm solar flux (normalized to 120), peaks in the equatorial and
// auroral geomagnetic zones, and peaks around 21:00 local time.
func ScintillationIndex(freqGHz, geomagLatDeg, solarFlux, localTimeH float64) float64 {
	const refFreqGHz = 1.5
	freqFactor := math.Pow(refFreqGHz/freqGHz, 1.5)
	solarFactor := math.Sqrt(solarFlux / 120.0)

	lat := math.Abs(geomagLatDeg)
	var latFactor float64
	switch {
	case lat <= 20.0:
		latFactor = 1.0
	case lat <= 55.0:
		latFactor = 0.1 + 0.9*math.Exp(-(lat-20.0)*(lat-20.0)/200.0)
	default:
		latFactor = 0.3 + 0.7*math.Exp(-(lat-65.0)*(lat-65.0)/100.0)
	}

	// Post-sunset peak, wrapped to the nearest 24 h cycle.
	hourOffset := localTimeH - 21.0
	if hourOffset < -12.0 {
		hourOffset += 24.0
	} else if hourOffset > 12.0 {
		hourOffset -= 24.0
	}
	timeFactor := 0.2 + 0.8*math.Exp(-hourOffset*hourOffset/18.0)

	const s4Base = 0.6
	return math.Max(s4Base*freqFactor*solarFactor*latFactor*timeFactor, 0)
}

// ScintillationFadeDB returns the ionospheric scintillation fade depth in dB
// exceeded for percent% of the time, via the Nakagami approximation
//
//	fade = 27.5 * S4eff^1.26 * (-ln(p/100))^0.45
//
// where S4eff is the index scaled by the 1/sqrt(sin(el)) obliquity factor
// and capped at 2. Negligible above a few GHz. Elevation is clamped to
// 5 degrees; percent must already be validated to lie inside (0, 100).
func ScintillationFadeDB(freqGHz, elevationDeg, geomagLatDeg, solarFlux, localTimeH, percent float64) float64 {
	s4 := ScintillationIndex(freqGHz, geomagLatDeg, solarFlux, localTimeH)
	if s4 < 1.0e-6 {
		return 0
	}

	el := math.Max(elevationDeg, minElevationDeg)
	obliquity := 1.0 / math.Sqrt(math.Sin(el*math.Pi/180))

	s4Eff := math.Min(s4*obliquity, 2.0)
	if s4Eff < 1.0e-6 {
		return 0
	}

	fade := 27.5 * math.Pow(s4Eff, 1.26) * math.Pow(-math.Log(percent/100.0), 0.45)
	return math.Max(fade, 0)
}
