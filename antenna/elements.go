// antenna/elements.go
package antenna

import (
	"math"

	"github.com/signalsfoundry/satlink-simulator/rf"
)

// Dipole is a half-wave dipole: 2.15 dBi regardless of frequency.
type Dipole struct{}

func (Dipole) GainDB(float64) float64 { return 2.15 }

func (Dipole) BeamwidthDeg(float64) float64 { return 78.0 }

// Monopole is a quarter-wave monopole over a ground plane: 5.15 dBi.
type Monopole struct{}

func (Monopole) GainDB(float64) float64 { return 5.15 }

func (Monopole) BeamwidthDeg(float64) float64 { return 45.0 }

// Helix is an axial-mode helix, gain per Kraus:
// G = 10.8 + 10*log10(N*S*C^2/lambda^3). Axial mode wants a circumference
// near lambda and a turn spacing near lambda/4.
type Helix struct {
	Turns          int
	CircumferenceM float64
	SpacingM       float64
}

func (h Helix) GainDB(freqHz float64) float64 {
	lambda := rf.WavelengthM(freqHz)
	n := float64(h.Turns)
	return 10.8 + 10*math.Log10(n*h.SpacingM*h.CircumferenceM*h.CircumferenceM/(lambda*lambda*lambda))
}

func (h Helix) BeamwidthDeg(freqHz float64) float64 {
	lambda := rf.WavelengthM(freqHz)
	cNorm := h.CircumferenceM / lambda
	sNorm := h.SpacingM / lambda
	return 52.0 / (cNorm * math.Sqrt(float64(h.Turns)*sNorm))
}

// Patch is a microstrip patch array: the element gain plus 10*log10(N),
// with the beamwidth shrinking along the longer array dimension.
type Patch struct {
	ElementGainDBi float64
	Elements       int
	Rows           int
	Cols           int
}

func (p Patch) GainDB(float64) float64 {
	return p.ElementGainDBi + 10*math.Log10(float64(p.Elements))
}

func (p Patch) BeamwidthDeg(float64) float64 {
	const singlePatchDeg = 70.0
	n := p.Rows
	if p.Cols > n {
		n = p.Cols
	}
	if n <= 0 {
		return singlePatchDeg
	}
	return singlePatchDeg / float64(n)
}
