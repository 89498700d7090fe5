package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

func TestPublisherEmit(t *testing.T) {
	store := NewInMemory()
	publisher := NewPublisher(store)
	did := domain.DID("did:web:acme.example")

	t.Run("fills event id, actor and request time", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), now)
		ctx = requestcontext.WithCaller(ctx, requestcontext.CallerIdentity{Subject: "auth0|op-1"})

		err := publisher.Emit(ctx, Event{
			Action:         ActionServiceAdded,
			OrganizationID: did,
			ServiceID:      "#issuer-1",
		})
		require.NoError(t, err)

		events := store.All()
		require.Len(t, events, 1)
		assert.NotEmpty(t, events[0].EventID)
		assert.Equal(t, "auth0|op-1", events[0].Actor)
		assert.Equal(t, now, events[0].OccurredAt)
	})

	t.Run("preserves explicit fields", func(t *testing.T) {
		at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		err := publisher.Emit(context.Background(), Event{
			EventID:        "evt-1",
			Action:         ActionServicesActivated,
			OrganizationID: did,
			Actor:          "system",
			OccurredAt:     at,
		})
		require.NoError(t, err)

		listed, err := publisher.List(context.Background(), did)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, "evt-1", listed[1].EventID)
		assert.Equal(t, "system", listed[1].Actor)
		assert.Equal(t, at, listed[1].OccurredAt)
	})
}

func TestWorkerPersistsInboxEvents(t *testing.T) {
	store := NewInMemory()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{EventID: "evt-1", Action: ActionServiceAdded, OrganizationID: "did:web:a.example"}
	inbox <- Event{EventID: "evt-2", Action: ActionServiceRemoved, OrganizationID: "did:web:a.example"}

	require.Eventually(t, func() bool {
		return len(store.All()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
