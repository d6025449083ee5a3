package web

import (
	"net/http"

	"github.com/Camblonie/recruiting-tracker/internal/export"
	"github.com/Camblonie/recruiting-tracker/internal/filter"
)

// exportRequest selects what to export and how. A nil Filter exports all
// candidates; empty Fields means the default column set.
type exportRequest struct {
	Format export.Format      `json:"format"`
	Fields []string           `json:"fields"`
	Filter *filter.Definition `json:"filter"`
}

// contentTypes maps export formats to response content types.
var contentTypes = map[export.Format]string{
	export.FormatCSV:  "text/csv; charset=utf-8",
	export.FormatJSON: "application/json",
	export.FormatText: "text/plain; charset=utf-8",
}

// handleExport serializes the (optionally filtered) candidate set in the
// requested format and streams it as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req := exportRequest{Format: export.FormatCSV}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid export request: "+err.Error())
		return
	}

	candidates, err := s.store.Candidates(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if req.Filter != nil {
		candidates = filter.Apply(candidates, *req.Filter)
	}

	companies, err := s.store.Companies(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	positions, err := s.store.Positions(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	data, err := export.NewExporter(companies, positions).Export(candidates, req.Format, req.Fields)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.`+string(req.Format)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
