package model

// Antenna is an antenna datasheet. Type selects the gain model; the
// geometry fields apply only where the type uses them (DiameterM for
// parabolic, NumElements for arrays).
type Antenna struct {
	Name string
	Type string // "parabolic", "patch", "helix", "dipole", "monopole", "horn", "yagi"

	GainDBi      float64
	FrequencyHz  float64
	BeamwidthDeg float64
	DiameterM    float64
	Efficiency   float64
	NumElements  int
	Polarization string

	MassKg float64
}
