// core/tle.go
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Magnitude bounds for accepting an SGP4 state: roughly surface to beyond
// geostationary. Anything outside marks a decayed or corrupt TLE.
const (
	minSGP4RadiusM = 6.2e6
	maxSGP4RadiusM = 5.0e7
)

// TLEPropagator adapts SGP4 propagation of a two-line element set to the
// Propagator interface, mainly to cross-check the analytic propagator
// against catalog data. Offsets are resolved against the supplied epoch at
// whole-second resolution.
type TLEPropagator struct {
	sat     satellite.Satellite
	epoch   time.Time
	periodS float64
}

// NewTLEPropagator validates the TLE lines and binds them to an epoch.
func NewTLEPropagator(line1, line2 string, epoch time.Time) (*TLEPropagator, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, err
	}

	// Mean motion in revolutions per day, line 2 columns 53-63.
	meanMotion, err := strconv.ParseFloat(strings.TrimSpace(line2[52:63]), 64)
	if err != nil || meanMotion <= 0 {
		return nil, fmt.Errorf("%w: TLE mean motion field is unusable: %q", ErrConfiguration, line2[52:63])
	}

	return &TLEPropagator{
		sat:     satellite.TLEToSat(line1, line2, satellite.GravityWGS72),
		epoch:   epoch.UTC(),
		periodS: 86400.0 / meanMotion,
	}, nil
}

// Propagate returns the SGP4 state at offsetS seconds past the bound epoch.
func (p *TLEPropagator) Propagate(offsetS float64) (OrbitState, error) {
	if offsetS < 0 || math.IsNaN(offsetS) {
		return OrbitState{}, fmt.Errorf("%w: time offset must be >= 0, got %g s", ErrConfiguration, offsetS)
	}

	at := p.epoch.Add(time.Duration(offsetS * float64(time.Second)))
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	// go-satellite works in kilometres; the simulator stores metres.
	posKm, velKm := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	state := OrbitState{
		TimeS:      offsetS,
		PositionM:  Vec3{X: posKm.X * 1000, Y: posKm.Y * 1000, Z: posKm.Z * 1000},
		VelocityMS: Vec3{X: velKm.X * 1000, Y: velKm.Y * 1000, Z: velKm.Z * 1000},
	}

	if !finiteVec(state.PositionM) || !finiteVec(state.VelocityMS) {
		return OrbitState{}, fmt.Errorf("sgp4 produced a non-finite state at t=%.3f s", offsetS)
	}
	if r := state.PositionM.Norm(); r < minSGP4RadiusM || r > maxSGP4RadiusM {
		return OrbitState{}, fmt.Errorf("sgp4 position magnitude %.0f m out of bounds at t=%.3f s", r, offsetS)
	}
	return state, nil
}

// Period returns the orbital period derived from the TLE mean motion.
func (p *TLEPropagator) Period() float64 {
	return p.periodS
}

// Epoch returns the wall-clock instant that offset zero maps to.
func (p *TLEPropagator) Epoch() time.Time {
	return p.epoch
}

func validateTLELines(line1, line2 string) error {
	if len(line1) != 69 {
		return fmt.Errorf("%w: TLE line 1 must be 69 characters, got %d", ErrConfiguration, len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("%w: TLE line 2 must be 69 characters, got %d", ErrConfiguration, len(line2))
	}
	if !strings.HasPrefix(line1, "1 ") {
		return fmt.Errorf("%w: TLE line 1 must start with \"1 \"", ErrConfiguration)
	}
	if !strings.HasPrefix(line2, "2 ") {
		return fmt.Errorf("%w: TLE line 2 must start with \"2 \"", ErrConfiguration)
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("%w: TLE catalog numbers disagree: %q vs %q", ErrConfiguration, line1[2:7], line2[2:7])
	}
	return nil
}

func finiteVec(v Vec3) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
