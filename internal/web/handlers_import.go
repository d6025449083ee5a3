package web

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/Camblonie/recruiting-tracker/internal/importer"
	"github.com/Camblonie/recruiting-tracker/internal/logging"
)

// readUpload reads the uploaded CSV from a multipart "file" part when one is
// present, otherwise from the raw request body. The read is capped at the
// configured maximum upload size.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}

// handleImport runs the CSV import pipeline against the store and returns
// the per-run result with counts, row errors, and diagnostics.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	result, err := importer.ImportCandidates(ctx, s.store, raw, importer.Options{})
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	writeJSON(w, r, http.StatusOK, result)
}

// previewResponse returns the parsed header, a capped sample of data rows,
// and the derived column mapping so the client can confirm it before
// importing. Mapping keys are canonical field labels; -1 means unmapped.
type previewResponse struct {
	Headers []string       `json:"headers"`
	Rows    [][]string     `json:"rows"`
	Total   int            `json:"total"`
	Mapping map[string]int `json:"mapping,omitempty"`
}

// previewRowCap bounds how many data rows a preview returns.
const previewRowCap = 20

func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	raw, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	headers, rows, err := importer.Preview(raw)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := previewResponse{Headers: headers, Total: len(rows)}
	if len(headers) > 0 {
		resp.Mapping = make(map[string]int)
		for f, idx := range importer.DefaultFieldMapping(headers) {
			resp.Mapping[f.String()] = idx
		}
	}
	if len(rows) > previewRowCap {
		rows = rows[:previewRowCap]
	}
	resp.Rows = rows
	writeJSON(w, r, http.StatusOK, resp)
}
