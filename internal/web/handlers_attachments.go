package web

import (
	"io"
	"net/http"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/model"
)

// attachmentMeta is the attachment without its content, for listings.
type attachmentMeta struct {
	ID          string `json:"id"`
	CandidateID string `json:"candidateId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	AddedAt     string `json:"addedAt"`
}

func (s *Server) handleListAttachments(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	attachments, err := s.store.Attachments(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]attachmentMeta, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, attachmentMeta{
			ID:          a.ID.String(),
			CandidateID: a.CandidateID.String(),
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        len(a.Content),
			AddedAt:     a.AddedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleAddAttachment stores an uploaded file against the candidate. The
// upload is a multipart "file" part; the part's filename and content type
// are kept with the record.
func (s *Server) handleAddAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	// Make sure the candidate exists before accepting the file.
	if _, err := s.store.Candidate(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	a := model.NewAttachment(id, header.Filename, header.Header.Get("Content-Type"), content)
	if err := s.store.InsertAttachment(r.Context(), a); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, attachmentMeta{
		ID:          a.ID.String(),
		CandidateID: a.CandidateID.String(),
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Size:        len(a.Content),
		AddedAt:     a.AddedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid attachment ID")
		return
	}

	if err := s.store.DeleteAttachment(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
