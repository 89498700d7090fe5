package didresolve

import (
	"context"
	"sync"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

// Resolver fetches the DID document for a DID. The registrar resolves
// non-custodied DIDs to verify their documents reference our registry before
// mutating services.
type Resolver interface {
	Resolve(ctx context.Context, did domain.DID) (*domain.DIDDocument, error)
}

// Mock is a map-backed resolver for tests and local development.
type Mock struct {
	mu   sync.RWMutex
	docs map[domain.DID]*domain.DIDDocument
}

func NewMock() *Mock {
	return &Mock{docs: make(map[domain.DID]*domain.DIDDocument)}
}

// Register makes doc resolvable.
func (m *Mock) Register(did domain.DID, doc *domain.DIDDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[did] = doc
}

func (m *Mock) Resolve(_ context.Context, did domain.DID) (*domain.DIDDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[did]
	if !ok {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed, "could not resolve "+did.String())
	}
	return doc, nil
}
