package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"registrar/pkg/domain"
)

// KafkaPublisher mirrors audit events onto a Kafka topic for downstream
// compliance consumers. Events are keyed by organization DID so per-org
// ordering survives partitioning.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *KafkaPublisher) Append(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrganizationID.String()),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.ErrorContext(ctx, "audit event publish failed",
				"event_id", event.EventID, "action", event.Action, "error", err)
		}
	})
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// MirroredStore appends to the primary store and mirrors each event to
// Kafka. Reads go to the primary store only.
type MirroredStore struct {
	Primary Store
	Kafka   *KafkaPublisher
}

func (m *MirroredStore) Append(ctx context.Context, event Event) error {
	if err := m.Primary.Append(ctx, event); err != nil {
		return err
	}
	return m.Kafka.Append(ctx, event)
}

func (m *MirroredStore) ListByOrganization(ctx context.Context, did domain.DID) ([]Event, error) {
	return m.Primary.ListByOrganization(ctx, did)
}
