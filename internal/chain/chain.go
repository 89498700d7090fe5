package chain

import (
	"context"
	"sync"

	"registrar/pkg/domain"
)

// ScopeUpdate carries the full recomputed permission delta for an
// organization's on-chain address. Both lists together cover every managed
// scope, so applying the update is idempotent.
type ScopeUpdate struct {
	Address        string             `json:"address"`
	ScopesToAdd    []domain.ChainScope `json:"scopesToAdd"`
	ScopesToRemove []domain.ChainScope `json:"scopesToRemove"`
}

// Updater pushes permission deltas to the blockchain permission contract.
// Updates are best-effort from the lifecycle's point of view.
type Updater interface {
	UpdateAddressScopes(ctx context.Context, update ScopeUpdate) error
}

// Mock records applied scope updates.
type Mock struct {
	mu      sync.Mutex
	updates []ScopeUpdate

	// Err, when set, is returned by every call.
	Err error
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) UpdateAddressScopes(_ context.Context, update ScopeUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.updates = append(m.updates, update)
	return nil
}

// Updates returns a copy of the recorded updates.
func (m *Mock) Updates() []ScopeUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ScopeUpdate(nil), m.updates...)
}
