// internal/api/catalog_handlers.go
package api

import (
	"fmt"
	"net/http"

	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
)

func (s *Server) requestLog(r *http.Request) logging.Logger {
	if log := logging.LoggerFromContext(r.Context()); log != nil {
		return log
	}
	return s.log
}

// requireRegistry guards the catalog routes for deployments running
// without one.
func (s *Server) requireRegistry(w http.ResponseWriter, r *http.Request) bool {
	if s.registry != nil {
		return true
	}
	writeError(r.Context(), w, s.requestLog(r), fmt.Errorf("%w: no catalog configured", catalog.ErrNotFound))
	return false
}

func (s *Server) handleListTransceivers(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	names, err := s.registry.Transceivers()
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogListResponse{Names: names})
}

func (s *Server) handleGetTransceiver(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	trx, err := s.registry.Transceiver(r.PathValue("name"))
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, transceiverResponseFromModel(trx))
}

func (s *Server) handleListAntennas(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	names, err := s.registry.Antennas()
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogListResponse{Names: names})
}

func (s *Server) handleGetAntenna(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	ant, err := s.registry.Antenna(r.PathValue("name"))
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, antennaResponseFromModel(ant))
}

func (s *Server) handleListGroundStations(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	names, err := s.registry.GroundStations()
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogListResponse{Names: names})
}

func (s *Server) handleGetGroundStation(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	gs, err := s.registry.GroundStation(r.PathValue("name"))
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, groundStationResponseFromModel(gs))
}

func (s *Server) handleListBands(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	names, err := s.registry.Bands()
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogListResponse{Names: names})
}

func (s *Server) handleGetBand(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	band, err := s.registry.Band(r.PathValue("name"))
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, bandResponseFromModel(band))
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	names, err := s.registry.Missions()
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogListResponse{Names: names})
}

// handleGetMission returns the raw preset config so clients can post it
// back to /v1/simulate, with or without edits.
func (s *Server) handleGetMission(w http.ResponseWriter, r *http.Request) {
	if !s.requireRegistry(w, r) {
		return
	}
	raw, err := s.registry.Mission(r.PathValue("name"))
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
