package audit

import (
	"context"

	"registrar/pkg/domain"
)

// Worker consumes audit events from a channel and persists them. It keeps
// background processing decoupled from the request path: lifecycle code
// drops an event into the inbox and moves on.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}

// Queue buffers events in front of a Worker so Emit never blocks the request
// path. When the buffer is full the event is appended synchronously to the
// backing store instead of being dropped.
type Queue struct {
	backing Store
	inbox   chan Event
}

func NewQueue(backing Store, size int) *Queue {
	return &Queue{backing: backing, inbox: make(chan Event, size)}
}

// Inbox is the channel a Worker drains.
func (q *Queue) Inbox() <-chan Event {
	return q.inbox
}

func (q *Queue) Append(ctx context.Context, event Event) error {
	select {
	case q.inbox <- event:
		return nil
	default:
		return q.backing.Append(ctx, event)
	}
}

func (q *Queue) ListByOrganization(ctx context.Context, did domain.DID) ([]Event, error) {
	return q.backing.ListByOrganization(ctx, did)
}
