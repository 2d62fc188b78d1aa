// Package notify fans out onboarding events to the mail/notification
// collaborator. Delivery is best effort: a failed notification never fails
// the send or submit that produced it.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// FormSentEvent is emitted once per recipient when a form is distributed.
// Link is the tokenized path the recipient opens.
type FormSentEvent struct {
	Token          string    `json:"token"`
	FormTitle      string    `json:"formTitle"`
	RecipientName  string    `json:"recipientName"`
	RecipientEmail string    `json:"recipientEmail"`
	Link           string    `json:"link"`
	SentAt         time.Time `json:"sentAt"`
}

// SubmissionReceivedEvent is emitted when a recipient submits answers.
type SubmissionReceivedEvent struct {
	Token          string    `json:"token"`
	FormTitle      string    `json:"formTitle"`
	RecipientEmail string    `json:"recipientEmail"`
	Completed      bool      `json:"completed"`
	ReceivedAt     time.Time `json:"receivedAt"`
}

// Notifier delivers onboarding events to the notification collaborator.
type Notifier interface {
	FormSent(ctx context.Context, event FormSentEvent) error
	SubmissionReceived(ctx context.Context, event SubmissionReceivedEvent) error
}

// LogNotifier records events to the log only. Used when no broker is
// configured (development, tests).
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) FormSent(ctx context.Context, event FormSentEvent) error {
	n.logger.InfoContext(ctx, "form sent notification",
		"token", event.Token,
		"recipient", event.RecipientEmail,
		"link", event.Link,
	)
	return nil
}

func (n *LogNotifier) SubmissionReceived(ctx context.Context, event SubmissionReceivedEvent) error {
	n.logger.InfoContext(ctx, "submission received notification",
		"token", event.Token,
		"recipient", event.RecipientEmail,
		"completed", event.Completed,
	)
	return nil
}
