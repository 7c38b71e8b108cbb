// Package events publishes pricing lifecycle events to Kafka. Publishing
// is best effort: quote computation never fails because a broker is down.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tailtown/pricingservice/internal/metrics"
)

// Event is the envelope written to every topic.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	TenantID  string                 `json:"tenant_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
}

// Publisher emits configuration-change and quote events.
type Publisher interface {
	// PublishConfigChanged announces that a tenant's pricing configuration
	// changed. Consumers use it to invalidate their own snapshots.
	PublishConfigChanged(ctx context.Context, tenantID, kind, action string, payload map[string]interface{}) error

	// PublishQuote emits a record of a computed quote for downstream
	// analytics.
	PublishQuote(ctx context.Context, tenantID, quoteType string, amount float64) error

	Close() error
}

// NoopPublisher discards all events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishConfigChanged(context.Context, string, string, string, map[string]interface{}) error {
	return nil
}

func (NoopPublisher) PublishQuote(context.Context, string, string, float64) error { return nil }

func (NoopPublisher) Close() error { return nil }

// KafkaPublisher writes events through a synchronous Sarama producer.
type KafkaPublisher struct {
	producer    sarama.SyncProducer
	configTopic string
	quoteTopic  string
	logger      *zap.Logger
}

// NewKafkaPublisher connects to the given brokers and returns a publisher.
func NewKafkaPublisher(brokers []string, configTopic, quoteTopic string, logger *zap.Logger) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaPublisherWithProducer(producer, configTopic, quoteTopic, logger), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer. Used in tests.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, configTopic, quoteTopic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer:    producer,
		configTopic: configTopic,
		quoteTopic:  quoteTopic,
		logger:      logger,
	}
}

func (p *KafkaPublisher) PublishConfigChanged(ctx context.Context, tenantID, kind, action string, payload map[string]interface{}) error {
	event := Event{
		ID:       uuid.New().String(),
		Type:     fmt.Sprintf("pricing.config.%s.%s", kind, action),
		TenantID: tenantID,
		Data:     payload,
		Version:  "1.0",
	}
	return p.publish(ctx, p.configTopic, tenantID, event)
}

func (p *KafkaPublisher) PublishQuote(ctx context.Context, tenantID, quoteType string, amount float64) error {
	event := Event{
		ID:       uuid.New().String(),
		Type:     fmt.Sprintf("pricing.quote.%s", quoteType),
		TenantID: tenantID,
		Data: map[string]interface{}{
			"quote_type": quoteType,
			"amount":     amount,
		},
		Version: "1.0",
	}
	return p.publish(ctx, p.quoteTopic, tenantID, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, event Event) error {
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		metrics.RecordEventPublished(topic, "error")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		metrics.RecordEventPublished(topic, "error")
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", event.Type),
			zap.Error(err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.RecordEventPublished(topic, "success")
	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("event_type", event.Type),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
