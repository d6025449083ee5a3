package web

import (
	"net/http"

	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/google/uuid"
)

// Company and position handlers. Both are small reference sets; deletes
// cascade through the store (company deletes remove its positions, position
// deletes detach their candidates).

type companyRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.Companies(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, companies)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid company: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "company name is required")
		return
	}

	c := model.NewCompany(req.Name)
	if err := s.store.InsertCompany(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, c)
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid company ID")
		return
	}

	if err := s.store.DeleteCompany(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type positionRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompanyID   *uuid.UUID `json:"companyId"`
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := s.store.Positions(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, positions)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid position: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, r, http.StatusBadRequest, "position title is required")
		return
	}

	p := model.NewPosition(req.Title, req.Description)
	p.CompanyID = req.CompanyID
	if err := s.store.InsertPosition(r.Context(), p); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid position ID")
		return
	}

	if err := s.store.DeletePosition(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
