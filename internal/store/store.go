// Package store provides persistence for tracker records behind a single
// interface with two implementations: Memory for tests and ephemeral use,
// and Postgres for durable storage.
//
// Inserts are staged and committed by Save in one batch. Mutations made
// before a failed Save are not rolled back from the caller's view; the
// import pipeline relies on this to report a persistence failure without
// discarding the records it already composed.
package store

import (
	"context"
	"errors"

	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the record store shared by the importer, exporter, and API.
type Store interface {
	// Candidates.
	InsertCandidate(ctx context.Context, c *model.Candidate) error
	UpdateCandidate(ctx context.Context, c *model.Candidate) error
	DeleteCandidate(ctx context.Context, id uuid.UUID) error
	Candidate(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	Candidates(ctx context.Context) ([]*model.Candidate, error)
	CountCandidates(ctx context.Context) (int, error)

	// Companies. Deleting a company deletes its positions first, which in
	// turn detaches any candidates referencing them.
	InsertCompany(ctx context.Context, c *model.Company) error
	Companies(ctx context.Context) ([]*model.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error

	// Positions. Deleting a position nulls the position reference on its
	// candidates rather than deleting them.
	InsertPosition(ctx context.Context, p *model.Position) error
	Positions(ctx context.Context) ([]*model.Position, error)
	DeletePosition(ctx context.Context, id uuid.UUID) error

	// Attachments, owned by candidates and removed with them.
	InsertAttachment(ctx context.Context, a *model.Attachment) error
	Attachments(ctx context.Context, candidateID uuid.UUID) ([]*model.Attachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error

	// Saved filters.
	UpsertSavedFilter(ctx context.Context, f *model.SavedFilter) error
	SavedFilters(ctx context.Context) ([]*model.SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, id uuid.UUID) error

	// Save commits inserts staged since the last commit.
	Save(ctx context.Context) error
}
