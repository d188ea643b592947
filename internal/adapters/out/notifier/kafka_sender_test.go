package notifier

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
)

type capturingWriter struct {
	messages []kafka.Message
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestNewKafkaSender_RequiresHostAndTopic(t *testing.T) {
	_, err := NewKafkaSender("", "order-events")
	assert.Error(t, err)

	_, err = NewKafkaSender("localhost:9092", "")
	assert.Error(t, err)

	sender, err := NewKafkaSender("localhost:9092", "order-events")
	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestKafkaSender_PublishesEnvelopeKeyedByOrder(t *testing.T) {
	writer := &capturingWriter{}
	sender := &KafkaSender{writer: writer}

	orderID := kernel.NewUUID()
	record, err := notification.NewRecord(
		kernel.NewUUID(), orderID,
		notification.TypePricingAdjusted, []string{"pmg-reviewers"})
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), record))
	require.Len(t, writer.messages, 1)

	message := writer.messages[0]
	assert.Equal(t, orderID.String(), string(message.Key))

	var published envelope
	require.NoError(t, json.Unmarshal(message.Value, &published))
	assert.Equal(t, orderID.String(), published.OrderID)
	assert.Equal(t, "pricing_adjusted", published.Type)
	assert.Equal(t, []string{"pmg-reviewers"}, published.Recipients)
	assert.False(t, published.OccurredAt.IsZero())
}
