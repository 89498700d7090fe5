package monitor

import (
	"context"
	"sync"

	"registrar/pkg/domain"
)

// Client registers externally reachable service endpoints with the uptime
// monitoring service. Registration is best-effort.
type Client interface {
	RegisterMonitor(ctx context.Context, ref domain.ServiceRef, endpoint string) error
	RemoveMonitor(ctx context.Context, ref domain.ServiceRef) error
}

// Mock records monitor registrations in memory.
type Mock struct {
	mu       sync.Mutex
	monitors map[string]string

	// Err, when set, is returned by every call.
	Err error
}

func NewMock() *Mock {
	return &Mock{monitors: make(map[string]string)}
}

func (m *Mock) RegisterMonitor(_ context.Context, ref domain.ServiceRef, endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.monitors[ref.String()] = endpoint
	return nil
}

func (m *Mock) RemoveMonitor(_ context.Context, ref domain.ServiceRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.monitors, ref.String())
	return nil
}

// Monitored reports whether ref currently has a monitor.
func (m *Mock) Monitored(ref domain.ServiceRef) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.monitors[ref.String()]
	return ok
}
