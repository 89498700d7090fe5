package authclient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Mock is a deterministic in-process Provisioner for tests and local
// development. Created clients and grants are retained for inspection.
type Mock struct {
	mu      sync.Mutex
	seq     atomic.Int64
	clients map[string]ClientSpec
	grants  map[string]Grant

	// FailNext makes the next call return an error, for exercising
	// best-effort handling.
	FailNext error
}

func NewMock() *Mock {
	return &Mock{
		clients: make(map[string]ClientSpec),
		grants:  make(map[string]Grant),
	}
}

func (m *Mock) takeFailure() error {
	err := m.FailNext
	m.FailNext = nil
	return err
}

func (m *Mock) CreateClient(_ context.Context, spec ClientSpec) (*ProvisionedClient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	id := fmt.Sprintf("client-%d", m.seq.Add(1))
	m.clients[id] = spec
	return &ProvisionedClient{
		ClientID:     id,
		ClientSecret: "secret-" + id,
		ClientType:   "backend",
	}, nil
}

func (m *Mock) DeleteClient(_ context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	delete(m.clients, clientID)
	return nil
}

func (m *Mock) CreateGrant(_ context.Context, clientID, audience string, scopes []string) (*Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	grant := Grant{
		GrantID:  fmt.Sprintf("grant-%d", m.seq.Add(1)),
		ClientID: clientID,
		Audience: audience,
		Scopes:   append([]string(nil), scopes...),
	}
	m.grants[grant.GrantID] = grant
	return &grant, nil
}

func (m *Mock) DeleteGrant(_ context.Context, grantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	delete(m.grants, grantID)
	return nil
}

// ClientCount reports how many clients are currently provisioned.
func (m *Mock) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// GrantCount reports how many grants are currently live.
func (m *Mock) GrantCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.grants)
}
