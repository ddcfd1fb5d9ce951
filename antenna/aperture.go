// antenna/aperture.go
package antenna

import (
	"math"

	"github.com/signalsfoundry/satlink-simulator/rf"
)

// Parabolic is a prime-focus dish: G = eta*(pi*D/lambda)^2. A zero
// Efficiency means the usual 55%.
type Parabolic struct {
	DiameterM  float64
	Efficiency float64
}

func (p Parabolic) GainDB(freqHz float64) float64 {
	eff := p.Efficiency
	if eff <= 0 {
		eff = 0.55
	}
	ratio := math.Pi * p.DiameterM / rf.WavelengthM(freqHz)
	return 10 * math.Log10(eff*ratio*ratio)
}

// BeamwidthDeg uses the 21/(f_GHz*D) rule of thumb.
func (p Parabolic) BeamwidthDeg(freqHz float64) float64 {
	return 21.0 / (freqHz / 1e9 * p.DiameterM)
}

// Horn is a pyramidal horn: G = eta*4*pi*A/lambda^2 over the physical
// aperture. A zero Efficiency means 51%.
type Horn struct {
	WidthM     float64
	HeightM    float64
	Efficiency float64
}

func (h Horn) GainDB(freqHz float64) float64 {
	eff := h.Efficiency
	if eff <= 0 {
		eff = 0.51
	}
	lambda := rf.WavelengthM(freqHz)
	return 10 * math.Log10(eff*4*math.Pi*h.WidthM*h.HeightM/(lambda*lambda))
}

// BeamwidthDeg returns the E-plane beamwidth, 51*lambda over the height.
func (h Horn) BeamwidthDeg(freqHz float64) float64 {
	return 51.0 * rf.WavelengthM(freqHz) / h.HeightM
}
