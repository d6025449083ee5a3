package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer that owns zero or more positions.
type Company struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon []byte    `json:"icon,omitempty"`
}

// NewCompany creates a company with a generated ID.
func NewCompany(name string) *Company {
	return &Company{ID: uuid.New(), Name: name}
}

// Position is an open role, optionally belonging to one company and
// referenced by zero or more candidates.
type Position struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CompanyID   *uuid.UUID `json:"companyId,omitempty"`
}

// NewPosition creates a position with a generated ID.
func NewPosition(title, description string) *Position {
	return &Position{ID: uuid.New(), Title: title, Description: description}
}

// Attachment is a file owned by a single candidate.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidateId"`
	Filename    string    `json:"filename"`
	Content     []byte    `json:"content,omitempty"`
	ContentType string    `json:"contentType"`
	AddedAt     time.Time `json:"addedAt"`
}

// NewAttachment creates an attachment for the given candidate.
func NewAttachment(candidateID uuid.UUID, filename, contentType string, content []byte) *Attachment {
	return &Attachment{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Filename:    filename,
		Content:     content,
		ContentType: contentType,
		AddedAt:     time.Now(),
	}
}

// SavedFilter is a named, versioned filter definition. Criteria holds the
// JSON encoding of a filter.Definition; the store treats it as opaque.
type SavedFilter struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	Criteria  []byte    `json:"criteria"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSavedFilter creates a saved filter at version 1.
func NewSavedFilter(name string, criteria []byte) *SavedFilter {
	return &SavedFilter{
		ID:        uuid.New(),
		Name:      name,
		Version:   1,
		Criteria:  criteria,
		UpdatedAt: time.Now(),
	}
}
