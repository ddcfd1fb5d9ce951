package model

// GroundStationEntry is a ground station datasheet: site coordinates
// plus the receive-chain figures a link budget needs.
type GroundStationEntry struct {
	Name     string
	Operator string

	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeM    float64

	MinElevationDeg  float64
	AntennaDiameterM float64
	AntennaGainDBi   float64
	AntennaType      string
	SystemNoiseTempK float64
	LNANoiseFigureDB float64
	FrequencyBands   []string
	Polarization     string
}
