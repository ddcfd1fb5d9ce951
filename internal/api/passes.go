// internal/api/passes.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
)

// defaultScanStepS is the elevation scan granularity when the request
// leaves dt_s unset.
const defaultScanStepS = 10.0

// defaultMaskDeg is the visibility mask applied to inline stations that do
// not set one.
const defaultMaskDeg = 5.0

// handlePasses predicts contact windows from geometry alone; no link
// budget is evaluated.
func (s *Server) handlePasses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.LoggerFromContext(ctx)
	if log == nil {
		log = s.log
	}

	var req PassesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(ctx, w, log, fmt.Errorf("%w: decode body: %v", ErrInvalidRequest, err))
		return
	}

	station, err := s.resolveStation(req)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	earth := core.WGS84()
	if req.Orbit.J2 != nil && !*req.Orbit.J2 {
		earth.J2 = 0
	}
	prop, err := core.NewKeplerJ2Propagator(earth, core.OrbitalElements{
		AltitudeM:      req.Orbit.AltitudeKm * 1e3,
		InclinationDeg: req.Orbit.InclinationDeg,
		RAANDeg:        req.Orbit.RAANDeg,
	})
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	frame, err := core.NewGroundStationFrame(earth, station)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	durationS, err := resolveDuration(req, prop.Period())
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	dtS := req.DtS
	if dtS == 0 {
		dtS = defaultScanStepS
	}
	if dtS <= 0 {
		writeError(ctx, w, log, fmt.Errorf("%w: dt_s must be positive, got %g s", ErrInvalidRequest, dtS))
		return
	}

	windows, err := core.NewContactWindowFinder(prop, frame).FindWindows(durationS, dtS)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, PassesResponse{
		Station:     station.Name,
		DurationS:   durationS,
		OrbitPeriod: prop.Period(),
		Passes:      passWindowsFromCore(windows),
	})
}

func (s *Server) resolveStation(req PassesRequest) (core.GroundStation, error) {
	switch {
	case req.GroundStation != "" && req.Station != nil:
		return core.GroundStation{}, fmt.Errorf("%w: ground_station and station are mutually exclusive", ErrInvalidRequest)

	case req.GroundStation != "":
		if s.registry == nil {
			return core.GroundStation{}, fmt.Errorf("%w: ground_station given but no catalog available", ErrInvalidRequest)
		}
		entry, err := s.registry.GroundStation(req.GroundStation)
		if err != nil {
			return core.GroundStation{}, err
		}
		return core.NewGroundStation(entry.Name, entry.LatitudeDeg, entry.LongitudeDeg, entry.AltitudeM, entry.MinElevationDeg)

	case req.Station != nil:
		name := req.Station.Name
		if name == "" {
			name = "Custom"
		}
		mask := req.Station.MinElevationDeg
		if mask == 0 {
			mask = defaultMaskDeg
		}
		return core.NewGroundStation(name, req.Station.LatitudeDeg, req.Station.LongitudeDeg, req.Station.AltitudeM, mask)

	default:
		return core.GroundStation{}, fmt.Errorf("%w: one of ground_station or station is required", ErrInvalidRequest)
	}
}

func resolveDuration(req PassesRequest, periodS float64) (float64, error) {
	switch {
	case req.DurationOrbits > 0 && req.DurationS > 0:
		return 0, fmt.Errorf("%w: duration_orbits and duration_s are mutually exclusive", ErrInvalidRequest)
	case req.DurationOrbits > 0:
		return req.DurationOrbits * periodS, nil
	case req.DurationS > 0:
		return req.DurationS, nil
	default:
		return 0, fmt.Errorf("%w: one of duration_orbits or duration_s must be positive", ErrInvalidRequest)
	}
}
