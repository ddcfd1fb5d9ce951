package rf

import "math"

// SystemNoiseTempK combines the receiver chain noise contributions with the
// Friis formula:
//
//	T_sys = T_ant + T_lna + T_subsequent / G_lna
//
// Temperatures are in kelvin, the LNA gain in dB.
func SystemNoiseTempK(antennaK, lnaK, lnaGainDB, subsequentK float64) float64 {
	return antennaK + lnaK + subsequentK/FromDB(lnaGainDB)
}

// NoiseFigureToTempK converts a noise figure [dB] to an equivalent noise
// temperature [K] referred to 290 K.
func NoiseFigureToTempK(noiseFigureDB float64) float64 {
	return ReferenceNoiseTempK * (FromDB(noiseFigureDB) - 1)
}

// FigureOfMeritDBK returns the receiver figure of merit G/T [dB/K].
func FigureOfMeritDBK(gainDB, systemNoiseTempK float64) float64 {
	return gainDB - 10*math.Log10(systemNoiseTempK)
}

// AntennaNoiseTempK estimates the antenna noise temperature [K] from sky
// brightness plus ground spillover. Galactic noise dominates below 1 GHz
// and falls steeply with frequency; atmospheric emission takes over above
// 10 GHz. The ground term assumes roughly 10% sidelobe pickup at the
// horizon, fading toward zenith.
func AntennaNoiseTempK(frequencyHz, elevationDeg float64) float64 {
	freqGHz := frequencyHz / 1e9

	var skyK float64
	switch {
	case freqGHz < 0.1:
		skyK = 10000
	case freqGHz < 1.0:
		skyK = 10000 * math.Pow(freqGHz/0.1, -2.5)
	case freqGHz < 10.0:
		skyK = 20 * math.Pow(freqGHz, -0.5)
	default:
		skyK = 3 + 2*math.Pow(freqGHz/10, 1.5)
	}

	elRad := math.Max(elevationDeg, 5) * math.Pi / 180
	groundFraction := 0.1 * (1 - math.Sin(elRad))
	return skyK + 290*groundFraction
}

// RainNoiseTempK returns the noise temperature increase [K] caused by an
// attenuating rain medium of the given physical temperature:
//
//	T_rain = T_medium * (1 - 10^(-A/10))
func RainNoiseTempK(rainAttenDB, rainMediumK float64) float64 {
	return rainMediumK * (1 - math.Pow(10, -rainAttenDB/10))
}
