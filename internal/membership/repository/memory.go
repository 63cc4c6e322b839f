package repository

import (
	"context"
	"sync"

	"bookingdesk/backend/internal/membership/domain"
)

// MemoryRepository keeps memberships in process. It backs demo mode, where no database exists.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Membership
}

// NewMemoryRepository returns a repository holding copies of ms.
func NewMemoryRepository(ms ...domain.Membership) *MemoryRepository {
	return &MemoryRepository{items: append([]domain.Membership(nil), ms...)}
}

func (r *MemoryRepository) GetMembershipByUserAndOrg(_ context.Context, userID, orgID string) (*domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.items {
		if m.UserID == userID && m.OrgID == orgID {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListMembershipsByOrg(_ context.Context, orgID string) ([]*domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Membership
	for _, m := range r.items {
		if m.OrgID == orgID {
			cp := m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateMembership(_ context.Context, m *domain.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == m.ID {
			return nil
		}
	}
	r.items = append(r.items, *m)
	return nil
}
