package invitation

import (
	"context"
	"sync"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded invitation store.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[string]*Invitation
	byCode map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[string]*Invitation),
		byCode: make(map[string]string),
	}
}

func (s *InMemory) Create(_ context.Context, inv *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[inv.InvitationID]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.byCode[inv.Code]; ok {
		return sentinel.ErrConflict
	}
	copied := *inv
	s.byID[inv.InvitationID] = &copied
	s.byCode[inv.Code] = inv.InvitationID
	return nil
}

func (s *InMemory) FindByCode(_ context.Context, code string) (*Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.byID[id]
	return &copied, nil
}

// MarkAccepted consumes the invitation. Returns ErrInvalidState when already
// accepted and ErrExpired when past its expiry.
func (s *InMemory) MarkAccepted(_ context.Context, invitationID string, acceptedBy domain.DID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.byID[invitationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if inv.Accepted() {
		return sentinel.ErrInvalidState
	}
	if inv.Expired(at) {
		return sentinel.ErrExpired
	}
	accepted := at
	inv.AcceptedAt = &accepted
	inv.AcceptedBy = acceptedBy
	return nil
}
