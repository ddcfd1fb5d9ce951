// atmosphere/rain.go
package atmosphere

import "math"

// ITU-R P.838 specific-attenuation coefficients for horizontal and vertical
// polarization, tabulated against frequency in GHz. k is interpolated in
// log-log space, alpha in log-frequency space; outside the table the end
// values are held.
var (
	rainFreqGHz = []float64{1.0, 4.0, 8.0, 12.0, 20.0, 30.0, 50.0, 100.0}
	rainKH      = []float64{0.0000387, 0.00065, 0.00454, 0.0188, 0.0751, 0.187, 0.536, 1.31}
	rainAlphaH  = []float64{0.912, 1.121, 1.327, 1.276, 1.099, 1.021, 0.826, 0.616}
	rainKV      = []float64{0.0000352, 0.00053, 0.00395, 0.0168, 0.0691, 0.167, 0.479, 1.17}
	rainAlphaV  = []float64{0.880, 1.075, 1.310, 1.264, 1.065, 0.979, 0.759, 0.545}

	rainLogFreq = log10Slice(rainFreqGHz)
	rainLogKH   = log10Slice(rainKH)
	rainLogKV   = log10Slice(rainKV)
)

func log10Slice(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log10(x)
	}
	return out
}

// interpClamped linearly interpolates ys against xs at x, holding the end
// values outside the table. xs must be ascending.
func interpClamped(x float64, xs, ys []float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return ys[last]
	}
	for i := 1; i <= last; i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[last]
}

// RainCoefficients returns the P.838 coefficients k and alpha for the
// effective polarization. tiltDeg is the polarization tilt relative to
// horizontal: 0 is H, 90 is V, 45 approximates circular.
func RainCoefficients(freqGHz, elevationDeg, tiltDeg float64) (k, alpha float64) {
	logF := math.Log10(freqGHz)
	kH := math.Pow(10, interpClamped(logF, rainLogFreq, rainLogKH))
	kV := math.Pow(10, interpClamped(logF, rainLogFreq, rainLogKV))
	alphaH := interpClamped(logF, rainLogFreq, rainAlphaH)
	alphaV := interpClamped(logF, rainLogFreq, rainAlphaV)

	cos2El := math.Pow(math.Cos(elevationDeg*math.Pi/180), 2)
	cos2Tau := math.Cos(2 * tiltDeg * math.Pi / 180)

	k = (kH + kV + (kH-kV)*cos2El*cos2Tau) / 2
	num := kH*alphaH + kV*alphaV + (kH*alphaH-kV*alphaV)*cos2El*cos2Tau
	if k > 0 {
		alpha = num / (2 * k)
	} else {
		alpha = (alphaH + alphaV) / 2
	}
	return k, alpha
}

// RainAttenuation returns the specific attenuation gamma_R = k*R^alpha in
// dB/km for a rain rate in mm/h. Zero rain gives zero attenuation.
func RainAttenuation(freqGHz, rainRateMMH, elevationDeg, tiltDeg float64) float64 {
	if rainRateMMH <= 0 {
		return 0
	}
	k, alpha := RainCoefficients(freqGHz, elevationDeg, tiltDeg)
	return k * math.Pow(rainRateMMH, alpha)
}

// RainHeightKm returns the ITU-R P.839 mean annual rain height above mean
// sea level: 5 km inside the 23 degree tropical belt, then dropping by
// 75 m per degree of latitude, never below zero.
func RainHeightKm(latitudeDeg float64) float64 {
	lat := math.Abs(latitudeDeg)
	if lat <= 23.0 {
		return 5.0
	}
	return math.Max(5.0-0.075*(lat-23.0), 0)
}

// RainLossDB returns the P.618 rain attenuation exceeded for 0.01% of an
// average year in dB: the slant path through the rain layer times the
// specific attenuation, scaled by the horizontal reduction factor. Stations
// above the rain height see no rain loss. Elevation is clamped to 5 degrees.
func RainLossDB(freqGHz, elevationDeg, rainRateMMH, latitudeDeg, stationAltKm, tiltDeg float64) float64 {
	if rainRateMMH <= 0 {
		return 0
	}
	rainKm := RainHeightKm(latitudeDeg)
	if rainKm <= stationAltKm {
		return 0
	}

	el := math.Max(elevationDeg, minElevationDeg)
	sinEl := math.Sin(el * math.Pi / 180)
	cosEl := math.Cos(el * math.Pi / 180)

	slantKm := (rainKm - stationAltKm) / sinEl
	groundKm := slantKm * cosEl

	gamma := RainAttenuation(freqGHz, rainRateMMH, elevationDeg, tiltDeg)
	if gamma <= 0 {
		return 0
	}

	reduction := 1.0 / (1.0 + 0.78*math.Sqrt(groundKm*gamma/freqGHz) -
		0.38*(1.0-math.Exp(-2.0*groundKm)))
	reduction = math.Max(math.Min(reduction, 1.0), 0.01)

	return math.Max(gamma*slantKm*reduction, 0)
}
