// Package rf holds the RF arithmetic shared across the simulator: physical
// constants, dB conversions, free-space path loss, noise temperatures, and
// Doppler shift. Functions here are pure; range checks belong to the
// callers that assemble budgets from them.
package rf

import "math"

const (
	// SpeedOfLightMS is the speed of light in vacuum [m/s].
	SpeedOfLightMS = 299792458.0

	// BoltzmannJPerK is the Boltzmann constant [J/K].
	BoltzmannJPerK = 1.380649e-23

	// EarthRadiusM is the mean equatorial Earth radius [m].
	EarthRadiusM = 6378137.0

	// EarthMuM3S2 is the Earth gravitational parameter [m^3/s^2].
	EarthMuM3S2 = 3.986004418e14

	// EarthJ2 is the Earth oblateness perturbation coefficient.
	EarthJ2 = 1.08263e-3

	// ReferenceNoiseTempK is the reference temperature for noise figure
	// conversions [K].
	ReferenceNoiseTempK = 290.0
)

// BoltzmannDBW is the Boltzmann constant expressed in dBW/K/Hz, about
// -228.6. Link budgets subtract it, which adds the magnitude back.
var BoltzmannDBW = 10 * math.Log10(BoltzmannJPerK)
