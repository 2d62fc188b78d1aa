package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// producer is the subset of the franz-go client the notifier needs. Tests
// swap in a fake; production passes *kgo.Client.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

// KafkaNotifier publishes onboarding events as JSON records. Records are
// produced asynchronously; failures are logged and counted, never returned
// to the caller's request path.
type KafkaNotifier struct {
	client producer
	topic  string
	logger *slog.Logger
	closer func()
}

// NewKafkaNotifier connects to the given brokers. The topic is provisioned
// externally.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaNotifier{
		client: client,
		topic:  topic,
		logger: logger,
		closer: client.Close,
	}, nil
}

// Close flushes and releases the underlying client.
func (n *KafkaNotifier) Close() {
	if n.closer != nil {
		n.closer()
	}
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (n *KafkaNotifier) FormSent(ctx context.Context, event FormSentEvent) error {
	return n.publish(ctx, "onboarding.form_sent", event.Token, envelope{Type: "form_sent", Payload: event})
}

func (n *KafkaNotifier) SubmissionReceived(ctx context.Context, event SubmissionReceivedEvent) error {
	return n.publish(ctx, "onboarding.submission_received", event.Token, envelope{Type: "submission_received", Payload: event})
}

func (n *KafkaNotifier) publish(ctx context.Context, kind, key string, env envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}

	record := &kgo.Record{
		Topic: n.topic,
		Key:   []byte(key),
		Value: value,
	}
	n.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			n.logger.Error("notification publish failed",
				"event", kind,
				"token", key,
				"error", err,
			)
		}
	})
	return nil
}
