package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	ctx := context.Background()

	require.NoError(t, pub.Emit(ctx, Event{Action: ActionFormSent, Token: "tok-1"}))

	events, err := pub.List(ctx, "tok-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestAsyncPublisherFeedsWorker(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	pub := NewAsyncPublisher(store, inbox)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	require.NoError(t, pub.Emit(ctx, Event{Action: ActionFormSent, Token: "tok-async"}))

	assert.Eventually(t, func() bool {
		events, err := store.ListByToken(context.Background(), "tok-async")
		return err == nil && len(events) == 1 && !events[0].Timestamp.IsZero()
	}, time.Second, 10*time.Millisecond)
}

func TestWorkerDrainsInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Action: ActionFormSubmitted, Token: "tok-1", Email: "jane@example.com", Timestamp: time.Now()}
	inbox <- Event{Action: ActionFormCompleted, Token: "tok-1", Email: "jane@example.com", Timestamp: time.Now()}

	assert.Eventually(t, func() bool {
		events, err := store.ListByToken(context.Background(), "tok-1")
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
