// modem/modem.go

// Package modem models the digital side of the link: modulation BER curves,
// forward error correction gains, and their combination into the Eb/N0 a
// receiver actually needs.
package modem

// DefaultTargetBER is the bit error rate the link is sized for when the
// mission does not say otherwise.
const DefaultTargetBER = 1e-5

// Config pairs a modulation with a coding scheme and the implementation
// loss of the real hardware relative to theory.
type Config struct {
	Modulation           Modulation
	Coding               Coding
	ImplementationLossDB float64
}

// RequiredEbN0DB returns the Eb/N0 in dB the configured modem needs to hit
// targetBER: the uncoded requirement of the modulation, less the coding
// gain, plus the implementation loss.
func (c Config) RequiredEbN0DB(targetBER float64) float64 {
	return c.Modulation.RequiredEbN0DB(targetBER) - c.Coding.GainDB + c.ImplementationLossDB
}

// DataRateBps returns the achievable information rate in a given bandwidth:
// bandwidth times modulation spectral efficiency times code rate.
func (c Config) DataRateBps(bandwidthHz float64) float64 {
	return bandwidthHz * c.Modulation.SpectralEfficiency * c.Coding.CodeRate
}

// SpectralEfficiency returns the effective information density in
// bits/s/Hz after coding overhead.
func (c Config) SpectralEfficiency() float64 {
	return c.Modulation.SpectralEfficiency * c.Coding.CodeRate
}
