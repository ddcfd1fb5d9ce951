// internal/api/runs_handlers.go
package api

import (
	"fmt"
	"net/http"

	"github.com/signalsfoundry/satlink-simulator/internal/runs"
)

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	metas := []RunMeta{}
	if s.store != nil {
		stored := s.store.List()
		metas = make([]RunMeta, 0, len(stored))
		for _, run := range stored {
			metas = append(metas, runMetaFromStore(run))
		}
	}
	writeJSON(w, http.StatusOK, RunsResponse{Runs: metas})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.store == nil {
		writeError(r.Context(), w, s.requestLog(r), fmt.Errorf("%w: %s", runs.ErrNotFound, id))
		return
	}
	run, err := s.store.Get(id)
	if err != nil {
		writeError(r.Context(), w, s.requestLog(r), err)
		return
	}
	writeJSON(w, http.StatusOK, RunResponse{
		RunMeta: runMetaFromStore(run),
		Summary: run.Summary,
	})
}
