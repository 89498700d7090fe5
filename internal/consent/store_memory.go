package consent

import (
	"context"
	"sync"

	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// InMemory is an append-only consent store for tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	consents []Consent
	byID     map[string]int
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[string]int)}
}

func (s *InMemory) Append(_ context.Context, c Consent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[c.ConsentID]; ok {
		return sentinel.ErrConflict
	}
	s.byID[c.ConsentID] = len(s.consents)
	s.consents = append(s.consents, c)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, consentID string) (*Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[consentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := s.consents[idx]
	return &c, nil
}

// ListByOrganization returns consents in append order.
func (s *InMemory) ListByOrganization(_ context.Context, did domain.DID) ([]Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Consent
	for _, c := range s.consents {
		if c.OrganizationID == did {
			out = append(out, c)
		}
	}
	return out, nil
}

// LatestVersion returns the highest consent version recorded for a service,
// or 0 when none exists.
func (s *InMemory) LatestVersion(_ context.Context, did domain.DID, serviceID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := 0
	for _, c := range s.consents {
		if c.OrganizationID == did && c.ServiceID == serviceID && c.Version > latest {
			latest = c.Version
		}
	}
	return latest, nil
}
