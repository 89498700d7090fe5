package store

import (
	"context"
	"sync"

	"registrar/internal/group/models"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded group store for tests and local development.
type InMemory struct {
	mu     sync.RWMutex
	groups map[string]*models.Group
}

func NewInMemory() *InMemory {
	return &InMemory{groups: make(map[string]*models.Group)}
}

func (s *InMemory) Create(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group.GroupID]; ok {
		return sentinel.ErrConflict
	}
	s.groups[group.GroupID] = group.Clone()
	return nil
}

func (s *InMemory) FindByGroupID(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return group.Clone(), nil
}

func (s *InMemory) FindByDID(_ context.Context, did domain.DID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, group := range s.groups {
		if group.ContainsDID(did) {
			return group.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) AddClientAdmin(_ context.Context, groupID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if group.HasClientAdmin(userID) {
		return nil
	}
	group.ClientAdminIDs = append(group.ClientAdminIDs, userID)
	return nil
}

func (s *InMemory) AddDID(_ context.Context, groupID string, did domain.DID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if group.ContainsDID(did) {
		return nil
	}
	group.DIDs = append(group.DIDs, did)
	return nil
}
