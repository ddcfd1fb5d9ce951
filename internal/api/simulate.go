// internal/api/simulate.go
package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/internal/runs"
	"github.com/signalsfoundry/satlink-simulator/mission"
	"github.com/signalsfoundry/satlink-simulator/report"
)

// handleSimulate runs a full mission from the posted config. The body is a
// mission config in YAML or JSON form; catalog references resolve against
// the server's registry.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.LoggerFromContext(ctx)
	if log == nil {
		log = s.log
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(ctx, w, log, fmt.Errorf("%w: read body: %v", ErrInvalidRequest, err))
		return
	}
	if len(body) == 0 {
		writeError(ctx, w, log, fmt.Errorf("%w: empty body", ErrInvalidRequest))
		return
	}

	cfg, err := mission.Parse(body)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	m, err := mission.Build(cfg, s.registry)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	log.Info(ctx, "simulation started",
		logging.String("mission", m.Name),
		logging.Float64("frequency_hz", cfg.FrequencyHz),
		logging.Float64("duration_orbits", cfg.Simulation.DurationOrbits),
	)

	start := time.Now()
	res, err := m.Run(ctx)
	elapsed := time.Since(start)
	s.sim.ObserveRunDuration(elapsed)
	if err != nil {
		s.sim.IncRunErrors()
		writeError(ctx, w, log, err)
		return
	}
	s.sim.IncRuns()
	s.sim.SetLastRun(res.PassCount, res.TotalDataBits)
	s.sim.ObserveWindows(res.PassCount)
	sampleCount := 0
	for _, win := range res.Windows {
		sampleCount += len(win.Samples)
	}
	s.sim.AddSamples(sampleCount)

	summary := report.Summarize(m.Name, res)

	resp := SimulateResponse{
		Mission:   m.Name,
		CreatedAt: time.Now().UTC(),
		ElapsedMS: float64(elapsed) / float64(time.Millisecond),
		Summary:   summary,
	}
	if s.store != nil {
		stored := s.store.Add(runs.Run{
			Mission:   m.Name,
			CreatedAt: resp.CreatedAt,
			Elapsed:   elapsed,
			Summary:   summary,
		})
		resp.RunID = stored.ID
	}

	log.Info(ctx, "simulation finished",
		logging.String("mission", m.Name),
		logging.Int("passes", res.PassCount),
		logging.Float64("total_data_bits", res.TotalDataBits),
		logging.Float64("elapsed_ms", resp.ElapsedMS),
	)

	writeJSON(w, http.StatusOK, resp)
}
