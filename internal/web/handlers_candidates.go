package web

import (
	"net/http"

	"github.com/Camblonie/recruiting-tracker/internal/filter"
	"github.com/Camblonie/recruiting-tracker/internal/logging"
	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/Camblonie/recruiting-tracker/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// parseID extracts and parses the {id} URL parameter.
func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// handleListCandidates returns all candidates, newest first.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.store.Candidates(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := filter.Apply(candidates, filter.Definition{Sort: filter.SortNewestFirst})
	writeJSON(w, r, http.StatusOK, out)
}

// handleSearchCandidates filters candidates by the criteria in the body.
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	var def filter.Definition
	if err := decodeJSON(r, &def); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid filter: "+err.Error())
		return
	}

	candidates, err := s.store.Candidates(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, filter.Apply(candidates, def))
}

// candidateRequest is the JSON body for creating or updating a candidate.
type candidateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	LeadSource        string   `json:"leadSource"`
	YearsExperience   int      `json:"yearsExperience"`
	PreviousEmployers []string `json:"previousEmployers"`
	TechnicalFocus    []string `json:"technicalFocus"`
	TechnicianLevel   string   `json:"technicianLevel"`
	HiringStatus      string   `json:"hiringStatus"`

	Hot           bool `json:"hot"`
	NeedsFollowUp bool `json:"needsFollowUp"`

	PayScale       string `json:"payScale"`
	NeedsInsurance bool   `json:"needsInsurance"`
	OfferDetail    string `json:"offerDetail"`

	SocialLinks []string `json:"socialLinks"`
	Notes       string   `json:"notes"`

	PositionID *uuid.UUID `json:"positionId"`
}

// apply copies the request fields onto c. Enum strings go through the
// lenient parsers, so unknown values land on the defaults instead of failing.
func (req *candidateRequest) apply(c *model.Candidate) {
	c.Name = req.Name
	c.Phone = req.Phone
	c.Email = req.Email
	c.LeadSource = model.ParseLeadSource(req.LeadSource)
	c.YearsExperience = req.YearsExperience
	c.PreviousEmployers = req.PreviousEmployers
	c.TechnicalFocus = req.TechnicalFocus
	c.TechnicianLevel = model.ParseTechnicianLevel(req.TechnicianLevel)
	c.HiringStatus = model.ParseHiringStatus(req.HiringStatus)
	c.Hot = req.Hot
	c.NeedsFollowUp = req.NeedsFollowUp
	c.PayScale = req.PayScale
	c.NeedsInsurance = req.NeedsInsurance
	c.OfferDetail = req.OfferDetail
	c.SocialLinks = req.SocialLinks
	c.Notes = req.Notes
	c.PositionID = req.PositionID
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate: "+err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, r, validate.ErrMissingRequiredField)
		return
	}

	c := model.NewCandidate(req.Name, req.Phone, req.Email)
	req.apply(c)

	if err := validate.Candidate(c); err != nil {
		respondError(w, r, err)
		return
	}

	existing, err := s.store.Candidates(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := validate.CheckForDuplicates(c, existing); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.store.InsertCandidate(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("candidate created", "id", c.ID, "name", c.Name)
	writeJSON(w, r, http.StatusCreated, c)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	c, err := s.store.Candidate(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	var req candidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate: "+err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, r, validate.ErrMissingRequiredField)
		return
	}

	c, err := s.store.Candidate(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	req.apply(c)
	if err := validate.Candidate(c); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.store.UpdateCandidate(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	if err := s.store.DeleteCandidate(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("candidate deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// avoidRequest is the JSON body for toggling a candidate's avoid flag.
type avoidRequest struct {
	Avoid  bool   `json:"avoid"`
	Reason string `json:"reason"`
}

// handleSetAvoid toggles the avoid flag, recording the change in the
// candidate's avoid history.
func (s *Server) handleSetAvoid(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid candidate ID")
		return
	}

	var req avoidRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	c, err := s.store.Candidate(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c.SetAvoid(req.Avoid, req.Reason)
	if err := s.store.UpdateCandidate(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}
