// atmosphere/cloud.go
package atmosphere

import "math"

// CloudCoefficient returns the ITU-R P.840 cloud liquid-water specific
// attenuation coefficient K_l in (dB/km)/(g/m^3). It follows the Rayleigh
// absorption approximation with a double-Debye model for the complex
// permittivity of water, so the temperature dependence enters through the
// relaxation frequencies.
func CloudCoefficient(freqGHz, tempK float64) float64 {
	f := freqGHz
	theta := 300.0 / tempK

	// Primary and secondary Debye relaxation frequencies in GHz.
	fp := 20.20 - 146.4*(theta-1.0) + 316.0*(theta-1.0)*(theta-1.0)
	fs := 39.8 * fp

	eps0 := 77.66 + 103.3*(theta-1.0)
	eps1 := 0.0671 * eps0
	const eps2 = 3.52

	d1 := 1.0 + (f/fp)*(f/fp)
	d2 := 1.0 + (f/fs)*(f/fs)

	epsReal := (eps0-eps1)/d1 + (eps1-eps2)/d2 + eps2
	epsImag := f*(eps0-eps1)/(fp*d1) + f*(eps1-eps2)/(fs*d2)

	eta := 1.0e30
	if epsImag > 0 {
		eta = (2.0 + epsReal) / epsImag
	}
	kl := 0.819 * f / (epsImag * (1.0 + eta*eta))
	return math.Max(kl, 0)
}

// CloudLossDB returns the cloud and fog attenuation along the slant path in
// dB: A = K_l*L/sin(el), where L is the columnar liquid-water content in
// kg/m^2. One kg/m^2 spread over a kilometre is one g/m^3, so K_l*L is the
// zenith attenuation directly. Elevation is clamped to 5 degrees.
func CloudLossDB(freqGHz, elevationDeg, waterKgM2, tempK float64) float64 {
	if waterKgM2 <= 0 {
		return 0
	}
	el := math.Max(elevationDeg, minElevationDeg)
	sinEl := math.Sin(el * math.Pi / 180)
	return math.Max(CloudCoefficient(freqGHz, tempK)*waterKgM2/sinEl, 0)
}
