package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/filter"
	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/google/uuid"
)

// savedFilterRequest is the JSON body for creating or updating a saved
// filter. An omitted ID creates a new filter; a present ID replaces the
// existing one and bumps its version.
type savedFilterRequest struct {
	ID       *uuid.UUID        `json:"id"`
	Name     string            `json:"name"`
	Criteria filter.Definition `json:"criteria"`
}

// savedFilterResponse is the saved filter with its criteria decoded back
// into a Definition.
type savedFilterResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Version   int               `json:"version"`
	Criteria  filter.Definition `json:"criteria"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func toSavedFilterResponse(f *model.SavedFilter) savedFilterResponse {
	resp := savedFilterResponse{
		ID:        f.ID,
		Name:      f.Name,
		Version:   f.Version,
		UpdatedAt: f.UpdatedAt,
	}
	// Criteria is opaque to the store; a decode failure leaves it zero.
	json.Unmarshal(f.Criteria, &resp.Criteria)
	return resp
}

func (s *Server) handleListSavedFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.store.SavedFilters(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]savedFilterResponse, 0, len(filters))
	for _, f := range filters {
		out = append(out, toSavedFilterResponse(f))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleSaveFilter(w http.ResponseWriter, r *http.Request) {
	var req savedFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid filter: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "filter name is required")
		return
	}

	criteria, err := json.Marshal(req.Criteria)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "encoding criteria: "+err.Error())
		return
	}

	f := model.NewSavedFilter(req.Name, criteria)
	if req.ID != nil {
		f.ID = *req.ID
		existing, err := s.store.SavedFilters(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		for _, e := range existing {
			if e.ID == f.ID {
				f.Version = e.Version + 1
				break
			}
		}
	}

	if err := s.store.UpsertSavedFilter(r.Context(), f); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toSavedFilterResponse(f))
}

func (s *Server) handleDeleteSavedFilter(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid filter ID")
		return
	}

	if err := s.store.DeleteSavedFilter(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
