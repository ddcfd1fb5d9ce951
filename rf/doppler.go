package rf

import "math"

// DopplerShiftHz returns the carrier frequency shift [Hz] for a radial
// velocity [m/s]. Negative radial velocity (approaching) raises the
// received frequency.
func DopplerShiftHz(frequencyHz, radialVelocityMS float64) float64 {
	return -frequencyHz * radialVelocityMS / SpeedOfLightMS
}

// MaxDopplerShiftHz bounds the Doppler shift for a circular LEO orbit at
// the given altitude [m]. The worst case sits near the horizon where the
// orbital velocity is almost entirely radial.
func MaxDopplerShiftHz(altitudeM, frequencyHz float64) float64 {
	orbitalVelocity := math.Sqrt(EarthMuM3S2 / (EarthRadiusM + altitudeM))
	return frequencyHz * orbitalVelocity / SpeedOfLightMS
}
