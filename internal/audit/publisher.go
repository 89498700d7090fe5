package audit

import (
	"context"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

// Store persists audit events append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByOrganization(ctx context.Context, did domain.DID) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.Caller(ctx).Subject
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, did domain.DID) ([]Event, error) {
	return p.store.ListByOrganization(ctx, did)
}
