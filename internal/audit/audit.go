// Package audit records what happened to which form and when. Events are
// append-only; the worker drains an inbox channel so emitting never blocks
// a request for longer than a channel send.
package audit

import (
	"context"
	"time"
)

// Action names the auditable onboarding events.
type Action string

const (
	ActionFormSent      Action = "form.sent"
	ActionFormSubmitted Action = "form.submitted"
	ActionFormCompleted Action = "form.completed"
)

// Event is one audit record.
type Event struct {
	Action    Action    `json:"action"`
	Token     string    `json:"token"`
	Email     string    `json:"email,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByToken(ctx context.Context, token string) ([]Event, error)
}

// Publisher captures structured audit events through the storage layer so
// tests can swap sinks easily. With an inbox attached, Emit hands events to
// the Worker instead of writing synchronously.
type Publisher struct {
	store Store
	inbox chan<- Event
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// NewAsyncPublisher emits through an inbox drained by a Worker. Reads still
// go straight to the store.
func NewAsyncPublisher(store Store, inbox chan<- Event) *Publisher {
	return &Publisher{store: store, inbox: inbox}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, token string) ([]Event, error) {
	return p.store.ListByToken(ctx, token)
}

// Worker consumes audit events from a channel and persists them, keeping
// background processing testable without queue wiring.
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
