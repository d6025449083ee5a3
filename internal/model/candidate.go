// Package model defines the plain data records managed by the tracker:
// candidates, companies, positions, attachments, and saved filters.
// Records carry no behavior beyond simple mutators; the one exception is
// the candidate's avoid flag, which keeps an append-only change ledger.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AvoidChange is one entry in the avoid-flag history ledger.
type AvoidChange struct {
	At     time.Time `json:"at"`
	Avoid  bool      `json:"avoid"`
	Reason string    `json:"reason,omitempty"`
}

// Candidate is a technician candidate record.
type Candidate struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email"`

	LeadSource        LeadSource      `json:"leadSource"`
	YearsExperience   int             `json:"yearsExperience"`
	PreviousEmployers []string        `json:"previousEmployers,omitempty"`
	TechnicalFocus    []string        `json:"technicalFocus,omitempty"`
	TechnicianLevel   TechnicianLevel `json:"technicianLevel"`
	HiringStatus      HiringStatus    `json:"hiringStatus"`

	Hot           bool `json:"hot"`
	NeedsFollowUp bool `json:"needsFollowUp"`

	// Avoid reflects the last entry in AvoidHistory. Mutate it through
	// SetAvoid so the ledger stays consistent.
	Avoid        bool          `json:"avoid"`
	AvoidHistory []AvoidChange `json:"avoidHistory,omitempty"`

	PayScale       string     `json:"payScale,omitempty"`
	PayDate        *time.Time `json:"payDate,omitempty"`
	NeedsInsurance bool       `json:"needsInsurance"`

	OfferDetail string     `json:"offerDetail,omitempty"`
	OfferDate   *time.Time `json:"offerDate,omitempty"`

	Photo       []byte   `json:"photo,omitempty"`
	SocialLinks []string `json:"socialLinks,omitempty"`
	Notes       string   `json:"notes,omitempty"`

	DateEntered time.Time  `json:"dateEntered"`
	PositionID  *uuid.UUID `json:"positionId,omitempty"`
}

// NewCandidate creates a candidate with generated ID, default enum values,
// and DateEntered set to the current time.
func NewCandidate(name, phone, email string) *Candidate {
	return &Candidate{
		ID:              uuid.New(),
		Name:            name,
		Phone:           phone,
		Email:           email,
		LeadSource:      LeadInPerson,
		TechnicianLevel: LevelUnknown,
		HiringStatus:    StatusNotContacted,
		DateEntered:     time.Now(),
	}
}

// SetAvoid updates the avoid flag. A history entry is appended only when the
// value actually changes; setting the same value again is a no-op.
func (c *Candidate) SetAvoid(avoid bool, reason string) {
	if c.Avoid == avoid && len(c.AvoidHistory) > 0 {
		return
	}
	if len(c.AvoidHistory) == 0 && !avoid {
		// Initial state is already "not avoided"; don't record a no-op.
		return
	}
	c.Avoid = avoid
	c.AvoidHistory = append(c.AvoidHistory, AvoidChange{
		At:     time.Now(),
		Avoid:  avoid,
		Reason: reason,
	})
}

// Contacted reports whether the candidate has moved past the initial stage.
func (c *Candidate) Contacted() bool {
	return c.HiringStatus != StatusNotContacted
}
