// core/groundstation.go
package core

import (
	"fmt"
	"math"
	"strings"
)

// minSlantRangeM floors the reported slant range. A station exactly
// coincident with the satellite is unreachable in practice, but the floor
// keeps downstream loss formulas away from log(0).
const minSlantRangeM = 1.0

// GroundStation is a geodetic site with an elevation mask. Immutable once
// validated.
type GroundStation struct {
	Name            string
	LatitudeDeg     float64
	LongitudeDeg    float64
	AltitudeM       float64
	MinElevationDeg float64
}

// NewGroundStation validates the coordinates and returns the station value.
// Longitude accepts both the [-180, 180) and [0, 360) conventions.
func NewGroundStation(name string, latDeg, lonDeg, altM, minElevDeg float64) (GroundStation, error) {
	gs := GroundStation{
		Name:            strings.TrimSpace(name),
		LatitudeDeg:     latDeg,
		LongitudeDeg:    lonDeg,
		AltitudeM:       altM,
		MinElevationDeg: minElevDeg,
	}
	if err := gs.Validate(); err != nil {
		return GroundStation{}, err
	}
	return gs, nil
}

// Validate checks the coordinate and mask ranges.
func (gs GroundStation) Validate() error {
	if math.IsNaN(gs.LatitudeDeg) || gs.LatitudeDeg < -90 || gs.LatitudeDeg > 90 {
		return fmt.Errorf("%w: station latitude must be within [-90, 90] degrees, got %g", ErrConfiguration, gs.LatitudeDeg)
	}
	if math.IsNaN(gs.LongitudeDeg) || gs.LongitudeDeg < -180 || gs.LongitudeDeg >= 360 {
		return fmt.Errorf("%w: station longitude must be within [-180, 360) degrees, got %g", ErrConfiguration, gs.LongitudeDeg)
	}
	if math.IsNaN(gs.AltitudeM) || gs.AltitudeM < 0 {
		return fmt.Errorf("%w: station altitude must be >= 0 m, got %g", ErrConfiguration, gs.AltitudeM)
	}
	if math.IsNaN(gs.MinElevationDeg) || gs.MinElevationDeg < 0 || gs.MinElevationDeg >= 90 {
		return fmt.Errorf("%w: minimum elevation must be within [0, 90) degrees, got %g", ErrConfiguration, gs.MinElevationDeg)
	}
	return nil
}

// TopocentricObservation is one instant of look geometry from a station.
// Elevation is signed: negative values mean the satellite sits below the
// geometric horizon.
type TopocentricObservation struct {
	ElevationDeg float64
	AzimuthDeg   float64
	RangeM       float64
}

// GroundStationFrame converts inertial satellite states into topocentric
// observables for one station. The frame precomputes the station's
// Earth-fixed position and local up/east/north basis; Observe is pure and
// safe for concurrent use.
type GroundStationFrame struct {
	earth   EarthModel
	station GroundStation

	ecef  Vec3
	up    Vec3
	east  Vec3
	north Vec3
}

// NewGroundStationFrame validates the station and precomputes its basis.
func NewGroundStationFrame(earth EarthModel, station GroundStation) (*GroundStationFrame, error) {
	if !earth.valid() {
		return nil, fmt.Errorf("%w: earth model requires positive radius and mu", ErrConfiguration)
	}
	if err := station.Validate(); err != nil {
		return nil, err
	}

	latRad := station.LatitudeDeg * math.Pi / 180
	lonRad := station.LongitudeDeg * math.Pi / 180
	sinLat, cosLat := math.Sincos(latRad)
	sinLon, cosLon := math.Sincos(lonRad)

	r := earth.RadiusM + station.AltitudeM
	return &GroundStationFrame{
		earth:   earth,
		station: station,
		ecef: Vec3{
			X: r * cosLat * cosLon,
			Y: r * cosLat * sinLon,
			Z: r * sinLat,
		},
		up:    Vec3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat},
		east:  Vec3{X: -sinLon, Y: cosLon, Z: 0},
		north: Vec3{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat},
	}, nil
}

// Station returns the station the frame was built for.
func (f *GroundStationFrame) Station() GroundStation {
	return f.station
}

// Observe projects an inertial state into elevation, azimuth, and slant
// range as seen from the station at the state's time.
func (f *GroundStationFrame) Observe(state OrbitState) TopocentricObservation {
	satECEF := f.eciToECEF(state.PositionM, state.TimeS)
	rel := satECEF.Sub(f.ecef)

	rangeM := rel.Norm()
	if rangeM < minSlantRangeM {
		// Degenerate geometry: coincident points. Clamp and report
		// overhead rather than propagating a singularity.
		return TopocentricObservation{ElevationDeg: 90, AzimuthDeg: 0, RangeM: minSlantRangeM}
	}

	sinEl := rel.Dot(f.up) / rangeM
	if sinEl > 1 {
		sinEl = 1
	} else if sinEl < -1 {
		sinEl = -1
	}
	elevationDeg := math.Asin(sinEl) * 180 / math.Pi

	azimuthDeg := math.Atan2(rel.Dot(f.east), rel.Dot(f.north)) * 180 / math.Pi
	if azimuthDeg < 0 {
		azimuthDeg += 360
	}

	return TopocentricObservation{
		ElevationDeg: elevationDeg,
		AzimuthDeg:   azimuthDeg,
		RangeM:       rangeM,
	}
}

// RangeRateMS returns the radial velocity between satellite and station in
// the inertial frame, in m/s. Positive means the range is opening
// (receding); Doppler shift carries the opposite sign.
func (f *GroundStationFrame) RangeRateMS(state OrbitState) float64 {
	stationECI := f.ecefToECI(f.ecef, state.TimeS)
	// The station rides the rotating Earth: v = omega x r.
	stationVel := Vec3{
		X: -f.earth.RotationRadS * stationECI.Y,
		Y: f.earth.RotationRadS * stationECI.X,
		Z: 0,
	}

	rel := state.PositionM.Sub(stationECI)
	rangeM := rel.Norm()
	if rangeM < minSlantRangeM {
		return 0
	}
	relVel := state.VelocityMS.Sub(stationVel)
	return relVel.Dot(rel) / rangeM
}

// eciToECEF rotates an inertial vector into the Earth-fixed frame at the
// given offset from epoch. Epoch is taken as zero Earth rotation angle.
func (f *GroundStationFrame) eciToECEF(v Vec3, offsetS float64) Vec3 {
	sinT, cosT := math.Sincos(f.earth.RotationRadS * offsetS)
	return Vec3{
		X: cosT*v.X + sinT*v.Y,
		Y: -sinT*v.X + cosT*v.Y,
		Z: v.Z,
	}
}

func (f *GroundStationFrame) ecefToECI(v Vec3, offsetS float64) Vec3 {
	sinT, cosT := math.Sincos(f.earth.RotationRadS * offsetS)
	return Vec3{
		X: cosT*v.X - sinT*v.Y,
		Y: sinT*v.X + cosT*v.Y,
		Z: v.Z,
	}
}
