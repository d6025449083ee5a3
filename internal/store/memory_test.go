package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCandidateCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := model.NewCandidate("Alice Smith", "5551234567", "alice@example.com")
	require.NoError(t, m.InsertCandidate(ctx, c))

	got, err := m.Candidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)

	c.Notes = "updated"
	require.NoError(t, m.UpdateCandidate(ctx, c))
	got, _ = m.Candidate(ctx, c.ID)
	assert.Equal(t, "updated", got.Notes)

	n, err := m.CountCandidates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, m.DeleteCandidate(ctx, c.ID))
	_, err = m.Candidate(ctx, c.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id := uuid.New()

	assert.ErrorIs(t, m.UpdateCandidate(ctx, &model.Candidate{ID: id}), ErrNotFound)
	assert.ErrorIs(t, m.DeleteCandidate(ctx, id), ErrNotFound)
	assert.ErrorIs(t, m.DeleteCompany(ctx, id), ErrNotFound)
	assert.ErrorIs(t, m.DeletePosition(ctx, id), ErrNotFound)
	assert.ErrorIs(t, m.DeleteAttachment(ctx, id), ErrNotFound)
	assert.ErrorIs(t, m.DeleteSavedFilter(ctx, id), ErrNotFound)
}

func TestMemoryCandidatesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for i := 0; i < 5; i++ {
		c := model.NewCandidate(fmt.Sprintf("Candidate %d", i), "", "")
		require.NoError(t, m.InsertCandidate(ctx, c))
	}

	list, err := m.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, c := range list {
		assert.Equal(t, fmt.Sprintf("Candidate %d", i), c.Name)
	}
}

func TestMemoryDeletePositionDetachesCandidates(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	p := model.NewPosition("General", "")
	require.NoError(t, m.InsertPosition(ctx, p))

	c := model.NewCandidate("Alice Smith", "", "")
	c.PositionID = &p.ID
	require.NoError(t, m.InsertCandidate(ctx, c))

	require.NoError(t, m.DeletePosition(ctx, p.ID))

	got, err := m.Candidate(ctx, c.ID)
	require.NoError(t, err, "candidate survives position delete")
	assert.Nil(t, got.PositionID)
}

func TestMemoryDeleteCompanyCascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	company := model.NewCompany("Midtown Motors")
	require.NoError(t, m.InsertCompany(ctx, company))

	p := model.NewPosition("General", "")
	p.CompanyID = &company.ID
	require.NoError(t, m.InsertPosition(ctx, p))

	other := model.NewPosition("Unaffiliated", "")
	require.NoError(t, m.InsertPosition(ctx, other))

	c := model.NewCandidate("Alice Smith", "", "")
	c.PositionID = &p.ID
	require.NoError(t, m.InsertCandidate(ctx, c))

	require.NoError(t, m.DeleteCompany(ctx, company.ID))

	positions, _ := m.Positions(ctx)
	require.Len(t, positions, 1)
	assert.Equal(t, "Unaffiliated", positions[0].Title)

	got, _ := m.Candidate(ctx, c.ID)
	assert.Nil(t, got.PositionID)
}

func TestMemoryDeleteCandidateRemovesAttachments(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := model.NewCandidate("Alice Smith", "", "")
	require.NoError(t, m.InsertCandidate(ctx, c))

	a := model.NewAttachment(c.ID, "resume.pdf", "application/pdf", []byte("pdf"))
	require.NoError(t, m.InsertAttachment(ctx, a))

	require.NoError(t, m.DeleteCandidate(ctx, c.ID))

	list, err := m.Attachments(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryAttachmentRequiresCandidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a := model.NewAttachment(uuid.New(), "resume.pdf", "application/pdf", nil)
	assert.ErrorIs(t, m.InsertAttachment(ctx, a), ErrNotFound)
}

func TestMemorySavedFilters(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	f := model.NewSavedFilter("hot techs", []byte(`{"hot":true}`))
	require.NoError(t, m.UpsertSavedFilter(ctx, f))

	list, err := m.SavedFilters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hot techs", list[0].Name)

	// Upsert with the same ID replaces instead of appending.
	f.Name = "hot techs v2"
	require.NoError(t, m.UpsertSavedFilter(ctx, f))
	list, _ = m.SavedFilters(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "hot techs v2", list[0].Name)

	require.NoError(t, m.DeleteSavedFilter(ctx, f.ID))
	list, _ = m.SavedFilters(ctx)
	assert.Empty(t, list)
}

func TestMemorySaveErr(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Save(context.Background()))

	m.SaveErr = errors.New("disk full")
	assert.EqualError(t, m.Save(context.Background()), "disk full")
}
