package rf

import "math"

// FreeSpacePathLossDB returns the free-space path loss [dB] for a link of
// the given distance [m] and carrier frequency [Hz].
//
//	FSPL = 20*log10(4*pi*d*f / c)
func FreeSpacePathLossDB(distanceM, frequencyHz float64) float64 {
	return 20 * math.Log10(4*math.Pi*distanceM*frequencyHz/SpeedOfLightMS)
}

// SlantRangeM returns the ground-station-to-satellite slant range [m] for a
// spherical Earth, given the satellite altitude [m] and the elevation angle
// [deg]. At zenith this reduces to the altitude.
func SlantRangeM(altitudeM, elevationDeg float64) float64 {
	rSat := EarthRadiusM + altitudeM
	sinEl := math.Sin(elevationDeg * math.Pi / 180)

	// Law of cosines solved for the slant side:
	// d = -R*sin(el) + sqrt((R*sin(el))^2 + rSat^2 - R^2)
	h := EarthRadiusM * sinEl
	return -h + math.Sqrt(h*h+rSat*rSat-EarthRadiusM*EarthRadiusM)
}
