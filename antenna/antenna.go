// antenna/antenna.go

// Package antenna provides gain and beamwidth models for the antenna types
// the component catalog knows about, plus the pointing and polarization
// losses a link budget charges against them.
//
// The models are pure geometry; dimensions come validated from the catalog
// datasheets or the mission file.
package antenna

import "strings"

// Model is what the link-budget assembly needs from an antenna.
type Model interface {
	// GainDB returns the boresight gain in dBi.
	GainDB(freqHz float64) float64
	// BeamwidthDeg returns the approximate 3 dB beamwidth in degrees.
	BeamwidthDeg(freqHz float64) float64
}

// PointingLossDB returns the loss from a static pointing error under the
// Gaussian beam approximation, 12*(theta/bw)^2 dB. Half a beamwidth off
// boresight costs 3 dB.
func PointingLossDB(offAxisDeg, beamwidthDeg float64) float64 {
	r := offAxisDeg / beamwidthDeg
	return 12 * r * r
}

// PolarizationLossDB returns the mismatch loss between two polarizations,
// named "linear_v", "linear_h", "rhcp" or "lhcp". Matched polarizations are
// lossless; cross-polarized pairs get the 30 dB practical isolation limit;
// linear against circular costs 3 dB, as does any unknown pairing.
func PolarizationLossDB(txPol, rxPol string) float64 {
	tx := strings.ToLower(txPol)
	rx := strings.ToLower(rxPol)
	if tx == rx {
		return 0
	}
	switch {
	case isLinear(tx) && isLinear(rx), isCircular(tx) && isCircular(rx):
		return 30.0
	default:
		return 3.0
	}
}

func isLinear(pol string) bool {
	return pol == "linear_v" || pol == "linear_h"
}

func isCircular(pol string) bool {
	return pol == "rhcp" || pol == "lhcp"
}
