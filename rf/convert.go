package rf

import "math"

// ToDB converts a linear power ratio to decibels.
func ToDB(linear float64) float64 {
	return 10 * math.Log10(linear)
}

// FromDB converts decibels to a linear power ratio.
func FromDB(db float64) float64 {
	return math.Pow(10, db/10)
}

// WattsToDBW converts watts to dBW.
func WattsToDBW(watts float64) float64 {
	return 10 * math.Log10(watts)
}

// DBWToWatts converts dBW to watts.
func DBWToWatts(dbw float64) float64 {
	return math.Pow(10, dbw/10)
}

// WattsToDBm converts watts to dBm.
func WattsToDBm(watts float64) float64 {
	return 10*math.Log10(watts) + 30
}

// DBmToWatts converts dBm to watts.
func DBmToWatts(dbm float64) float64 {
	return math.Pow(10, (dbm-30)/10)
}

// DBmToDBW converts dBm to dBW.
func DBmToDBW(dbm float64) float64 {
	return dbm - 30
}

// WavelengthM converts a frequency [Hz] to its wavelength [m].
func WavelengthM(frequencyHz float64) float64 {
	return SpeedOfLightMS / frequencyHz
}

// FrequencyHz converts a wavelength [m] to its frequency [Hz].
func FrequencyHz(wavelengthM float64) float64 {
	return SpeedOfLightMS / wavelengthM
}
