package store

import (
	"context"
	"sync"

	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/google/uuid"
)

// Memory is an in-memory Store. Records are held in insertion order so that
// list results (and therefore sort tie-breaks) are deterministic.
type Memory struct {
	mu sync.RWMutex

	candidates   map[uuid.UUID]*model.Candidate
	companies    map[uuid.UUID]*model.Company
	positions    map[uuid.UUID]*model.Position
	attachments  map[uuid.UUID]*model.Attachment
	savedFilters map[uuid.UUID]*model.SavedFilter

	candidateOrder []uuid.UUID
	companyOrder   []uuid.UUID
	positionOrder  []uuid.UUID
	filterOrder    []uuid.UUID

	// SaveErr, when set, is returned by Save. Used by tests to exercise the
	// persistence-failure path without a database.
	SaveErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		candidates:   make(map[uuid.UUID]*model.Candidate),
		companies:    make(map[uuid.UUID]*model.Company),
		positions:    make(map[uuid.UUID]*model.Position),
		attachments:  make(map[uuid.UUID]*model.Attachment),
		savedFilters: make(map[uuid.UUID]*model.SavedFilter),
	}
}

func (m *Memory) InsertCandidate(_ context.Context, c *model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[c.ID]; !ok {
		m.candidateOrder = append(m.candidateOrder, c.ID)
	}
	m.candidates[c.ID] = c
	return nil
}

func (m *Memory) UpdateCandidate(_ context.Context, c *model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[c.ID]; !ok {
		return ErrNotFound
	}
	m.candidates[c.ID] = c
	return nil
}

func (m *Memory) DeleteCandidate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[id]; !ok {
		return ErrNotFound
	}
	delete(m.candidates, id)
	m.candidateOrder = removeID(m.candidateOrder, id)
	for aid, a := range m.attachments {
		if a.CandidateID == id {
			delete(m.attachments, aid)
		}
	}
	return nil
}

func (m *Memory) Candidate(_ context.Context, id uuid.UUID) (*model.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *Memory) Candidates(_ context.Context) ([]*model.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Candidate, 0, len(m.candidateOrder))
	for _, id := range m.candidateOrder {
		out = append(out, m.candidates[id])
	}
	return out, nil
}

func (m *Memory) CountCandidates(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.candidates), nil
}

func (m *Memory) InsertCompany(_ context.Context, c *model.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[c.ID]; !ok {
		m.companyOrder = append(m.companyOrder, c.ID)
	}
	m.companies[c.ID] = c
	return nil
}

func (m *Memory) Companies(_ context.Context) ([]*model.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Company, 0, len(m.companyOrder))
	for _, id := range m.companyOrder {
		out = append(out, m.companies[id])
	}
	return out, nil
}

// DeleteCompany removes the company after deleting each of its positions,
// which detaches any candidates pointing at them.
func (m *Memory) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	m.mu.RLock()
	if _, ok := m.companies[id]; !ok {
		m.mu.RUnlock()
		return ErrNotFound
	}
	var owned []uuid.UUID
	for pid, p := range m.positions {
		if p.CompanyID != nil && *p.CompanyID == id {
			owned = append(owned, pid)
		}
	}
	m.mu.RUnlock()

	for _, pid := range owned {
		if err := m.DeletePosition(ctx, pid); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.companies, id)
	m.companyOrder = removeID(m.companyOrder, id)
	return nil
}

func (m *Memory) InsertPosition(_ context.Context, p *model.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.positions[p.ID]; !ok {
		m.positionOrder = append(m.positionOrder, p.ID)
	}
	m.positions[p.ID] = p
	return nil
}

func (m *Memory) Positions(_ context.Context) ([]*model.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Position, 0, len(m.positionOrder))
	for _, id := range m.positionOrder {
		out = append(out, m.positions[id])
	}
	return out, nil
}

// DeletePosition removes the position and nulls the reference on any
// candidate that pointed at it.
func (m *Memory) DeletePosition(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.positions[id]; !ok {
		return ErrNotFound
	}
	delete(m.positions, id)
	m.positionOrder = removeID(m.positionOrder, id)
	for _, c := range m.candidates {
		if c.PositionID != nil && *c.PositionID == id {
			c.PositionID = nil
		}
	}
	return nil
}

func (m *Memory) InsertAttachment(_ context.Context, a *model.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[a.CandidateID]; !ok {
		return ErrNotFound
	}
	m.attachments[a.ID] = a
	return nil
}

func (m *Memory) Attachments(_ context.Context, candidateID uuid.UUID) ([]*model.Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Attachment
	for _, a := range m.attachments {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) DeleteAttachment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attachments[id]; !ok {
		return ErrNotFound
	}
	delete(m.attachments, id)
	return nil
}

func (m *Memory) UpsertSavedFilter(_ context.Context, f *model.SavedFilter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.savedFilters[f.ID]; !ok {
		m.filterOrder = append(m.filterOrder, f.ID)
	}
	m.savedFilters[f.ID] = f
	return nil
}

func (m *Memory) SavedFilters(_ context.Context) ([]*model.SavedFilter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.SavedFilter, 0, len(m.filterOrder))
	for _, id := range m.filterOrder {
		out = append(out, m.savedFilters[id])
	}
	return out, nil
}

func (m *Memory) DeleteSavedFilter(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.savedFilters[id]; !ok {
		return ErrNotFound
	}
	delete(m.savedFilters, id)
	m.filterOrder = removeID(m.filterOrder, id)
	return nil
}

// Save commits staged inserts. The in-memory store applies writes
// immediately, so this only reports the injected SaveErr, if any.
func (m *Memory) Save(_ context.Context) error {
	return m.SaveErr
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
