// core/orbit.go
package core

import (
	"fmt"
	"math"
)

// OrbitalElements describe a circular low-Earth orbit. Altitude is measured
// above the reference radius; RAAN and the initial argument of latitude fix
// the orientation at epoch. Eccentricity is identically zero.
type OrbitalElements struct {
	AltitudeM      float64
	InclinationDeg float64
	RAANDeg        float64
	// ArgLatDeg is the initial argument of latitude (angle from the
	// ascending node to the satellite, in-plane). Zero starts the
	// satellite at the ascending node.
	ArgLatDeg float64
}

// OrbitState is the inertial state at a time offset from epoch. States are
// derived values; a new one is produced per query and never mutated.
type OrbitState struct {
	// TimeS is the offset from the epoch in seconds.
	TimeS float64
	// PositionM is the inertial position in metres.
	PositionM Vec3
	// VelocityMS is the inertial velocity in metres per second.
	VelocityMS Vec3
}

// Propagator yields the inertial state of a satellite at an offset from its
// epoch. Implementations must be pure: no internal mutation per call, so
// independent offsets may be evaluated concurrently.
type Propagator interface {
	Propagate(offsetS float64) (OrbitState, error)
	// Period returns the orbital period in seconds.
	Period() float64
}

// KeplerJ2Propagator advances a circular orbit analytically: uniform in-plane
// motion at the mean rate, plus the secular J2 drift of the ascending node
// and of the argument of latitude. For e=0 the perigee direction is
// undefined, so the perigee drift term folds into the argument-of-latitude
// rate instead of appearing as a separate angle.
type KeplerJ2Propagator struct {
	earth    EarthModel
	elements OrbitalElements

	semiMajorAxisM float64
	incRad         float64
	raan0Rad       float64
	argLat0Rad     float64

	meanMotionRadS float64 // Keplerian n = sqrt(mu/a^3)
	argLatRateRadS float64 // n plus the secular J2 correction
	raanDotRadS    float64 // nodal regression rate
}

// NewKeplerJ2Propagator validates the elements and precomputes the secular
// rates. Invalid altitude or inclination fails here, never at propagation
// time.
func NewKeplerJ2Propagator(earth EarthModel, el OrbitalElements) (*KeplerJ2Propagator, error) {
	if !earth.valid() {
		return nil, fmt.Errorf("%w: earth model requires positive radius and mu", ErrConfiguration)
	}
	if el.AltitudeM <= 0 || math.IsNaN(el.AltitudeM) {
		return nil, fmt.Errorf("%w: altitude must be positive, got %g m", ErrConfiguration, el.AltitudeM)
	}
	if el.InclinationDeg < 0 || el.InclinationDeg > 180 || math.IsNaN(el.InclinationDeg) {
		return nil, fmt.Errorf("%w: inclination must be within [0, 180] degrees, got %g", ErrConfiguration, el.InclinationDeg)
	}

	a := earth.RadiusM + el.AltitudeM
	n := math.Sqrt(earth.MuM3S2 / (a * a * a))
	cosI := math.Cos(el.InclinationDeg * math.Pi / 180)
	// For a circular orbit the semi-latus rectum equals a.
	j2Factor := earth.J2 * (earth.RadiusM / a) * (earth.RadiusM / a) * n

	return &KeplerJ2Propagator{
		earth:          earth,
		elements:       el,
		semiMajorAxisM: a,
		incRad:         el.InclinationDeg * math.Pi / 180,
		raan0Rad:       el.RAANDeg * math.Pi / 180,
		argLat0Rad:     el.ArgLatDeg * math.Pi / 180,
		meanMotionRadS: n,
		argLatRateRadS: n + 0.75*j2Factor*(5*cosI*cosI-1),
		raanDotRadS:    -1.5 * j2Factor * cosI,
	}, nil
}

// Propagate returns the inertial state at offsetS seconds past epoch.
func (p *KeplerJ2Propagator) Propagate(offsetS float64) (OrbitState, error) {
	if offsetS < 0 || math.IsNaN(offsetS) {
		return OrbitState{}, fmt.Errorf("%w: time offset must be >= 0, got %g s", ErrConfiguration, offsetS)
	}

	u := p.argLat0Rad + p.argLatRateRadS*offsetS
	raan := p.raan0Rad + p.raanDotRadS*offsetS

	sinU, cosU := math.Sincos(u)
	sinRAAN, cosRAAN := math.Sincos(raan)
	sinI, cosI := math.Sincos(p.incRad)

	r := p.semiMajorAxisM
	pos := Vec3{
		X: r * (cosRAAN*cosU - sinRAAN*sinU*cosI),
		Y: r * (sinRAAN*cosU + cosRAAN*sinU*cosI),
		Z: r * (sinU * sinI),
	}

	// d/dt of the rotation above; both u and RAAN advance, so the node
	// drift contributes cross terms alongside the in-plane rate.
	uDot := p.argLatRateRadS
	raanDot := p.raanDotRadS
	vel := Vec3{
		X: -raanDot*pos.Y - r*uDot*(cosRAAN*sinU+sinRAAN*cosU*cosI),
		Y: raanDot*pos.X + r*uDot*(cosRAAN*cosU*cosI-sinRAAN*sinU),
		Z: r * uDot * cosU * sinI,
	}

	return OrbitState{TimeS: offsetS, PositionM: pos, VelocityMS: vel}, nil
}

// Period returns the Keplerian orbital period 2*pi*sqrt(a^3/mu) in seconds.
// The J2 rate corrections shift angles, not the period definition used for
// duration accounting.
func (p *KeplerJ2Propagator) Period() float64 {
	return 2 * math.Pi / p.meanMotionRadS
}

// SemiMajorAxisM returns the orbit radius in metres.
func (p *KeplerJ2Propagator) SemiMajorAxisM() float64 {
	return p.semiMajorAxisM
}

// Elements returns the elements the propagator was built from.
func (p *KeplerJ2Propagator) Elements() OrbitalElements {
	return p.elements
}

// NodalRegressionRadS returns the secular RAAN drift rate in rad/s.
func (p *KeplerJ2Propagator) NodalRegressionRadS() float64 {
	return p.raanDotRadS
}
