package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaPublisher_PublishQuote(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(data []byte) error {
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			return err
		}
		require.Equal(t, "pricing.quote.deposit", event.Type)
		require.Equal(t, "camp-bowwow", event.TenantID)
		require.Equal(t, 62.5, event.Data["amount"])
		require.NotEmpty(t, event.ID)
		require.False(t, event.Timestamp.IsZero())
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "pricing.config", "pricing.quotes", zap.NewNop())
	err := pub.PublishQuote(context.Background(), "camp-bowwow", "deposit", 62.5)
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_PublishConfigChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(data []byte) error {
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			return err
		}
		require.Equal(t, "pricing.config.deposit.upsert", event.Type)
		require.Equal(t, "t1", event.TenantID)
		require.Equal(t, "Holiday Season", event.Data["rule_name"])
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "pricing.config", "pricing.quotes", zap.NewNop())
	err := pub.PublishConfigChanged(context.Background(), "t1", "deposit", "upsert", map[string]interface{}{
		"rule_name": "Holiday Season",
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_SendFailureSurfaces(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "pricing.config", "pricing.quotes", zap.NewNop())
	err := pub.PublishQuote(context.Background(), "t1", "refund", 10)
	require.Error(t, err)
	require.NoError(t, pub.Close())
}

func TestNoopPublisher(t *testing.T) {
	var pub Publisher = NoopPublisher{}
	require.NoError(t, pub.PublishQuote(context.Background(), "t1", "deposit", 1))
	require.NoError(t, pub.PublishConfigChanged(context.Background(), "t1", "deposit", "delete", nil))
	require.NoError(t, pub.Close())
}
