// core/earth.go
package core

import "github.com/signalsfoundry/satlink-simulator/rf"

// earthRotationRadS is the sidereal rotation rate in rad/s.
const earthRotationRadS = 7.2921159e-5

// EarthModel bundles the physical constants the propagator and the
// topocentric frame depend on. It is passed explicitly rather than read from
// package globals so tests can substitute an alternate reference body without
// cross-test interference.
type EarthModel struct {
	// RadiusM is the equatorial radius in metres.
	RadiusM float64
	// MuM3S2 is the gravitational parameter GM in m^3/s^2.
	MuM3S2 float64
	// J2 is the dimensionless second zonal harmonic.
	J2 float64
	// RotationRadS is the sidereal rotation rate in rad/s.
	RotationRadS float64
}

// WGS84 returns the reference Earth used throughout the simulator.
func WGS84() EarthModel {
	return EarthModel{
		RadiusM:      rf.EarthRadiusM,
		MuM3S2:       rf.EarthMuM3S2,
		J2:           rf.EarthJ2,
		RotationRadS: earthRotationRadS,
	}
}

func (e EarthModel) valid() bool {
	return e.RadiusM > 0 && e.MuM3S2 > 0 && e.RotationRadS >= 0
}
