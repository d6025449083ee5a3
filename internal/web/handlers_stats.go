package web

import (
	"net/http"

	"github.com/Camblonie/recruiting-tracker/internal/stats"
)

// handleStats returns aggregate counts and distributions over all candidates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.store.Candidates(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats.Summarize(candidates))
}
