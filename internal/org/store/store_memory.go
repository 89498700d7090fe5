package store

import (
	"context"
	"sync"

	"registrar/internal/org/models"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// InMemory is the in-memory organization store used in tests and local
// development. Reads and writes deep-copy so callers never alias stored
// state.
type InMemory struct {
	mu   sync.RWMutex
	orgs map[domain.DID]*models.Organization
}

func NewInMemory() *InMemory {
	return &InMemory{orgs: make(map[domain.DID]*models.Organization)}
}

func (s *InMemory) Create(_ context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[org.DID]; exists {
		return sentinel.ErrConflict
	}
	s.orgs[org.DID] = org.Clone()
	return nil
}

func (s *InMemory) FindByDID(_ context.Context, did domain.DID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[did]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return org.Clone(), nil
}

// FindByServiceRef locates the organization owning the referenced DID,
// used to resolve CAO service references.
func (s *InMemory) FindByServiceRef(ctx context.Context, ref domain.ServiceRef) (*models.Organization, error) {
	return s.FindByDID(ctx, ref.DID)
}

func (s *InMemory) Update(_ context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[org.DID]; !exists {
		return sentinel.ErrNotFound
	}
	s.orgs[org.DID] = org.Clone()
	return nil
}

// Execute runs validate and mutate while holding the store lock, giving an
// atomic read-validate-mutate-persist cycle. The mutated organization is
// returned; a validation error leaves the stored record untouched.
func (s *InMemory) Execute(
	_ context.Context,
	did domain.DID,
	validate func(org *models.Organization) error,
	mutate func(org *models.Organization),
) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orgs[did]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := stored.Clone()
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	s.orgs[did] = working
	return working.Clone(), nil
}
