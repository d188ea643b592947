package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// Sender delivers one notification to the outbound transport. The dispatcher
// owns retries; a Sender performs exactly one attempt per call.
type Sender interface {
	Send(ctx context.Context, record *notification.Record) error
}

// envelope is the wire format published to the order-events topic. The
// external mail/webhook service consumes it.
type envelope struct {
	OrderID    string    `json:"order_id"`
	Type       string    `json:"type"`
	Recipients []string  `json:"recipients"`
	OccurredAt time.Time `json:"occurred_at"`
}

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSender publishes notification envelopes to a Kafka topic. Messages
// are keyed by order ID so all notifications for one order land on the same
// partition and stay ordered.
type KafkaSender struct {
	writer kafkaMessageWriter
}

// NewKafkaSender creates a sender that writes to the given broker and topic.
func NewKafkaSender(host, topic string) (*KafkaSender, error) {
	if host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	return &KafkaSender{writer: &kafka.Writer{
		Addr:         kafka.TCP(host),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}, nil
}

// Send publishes the record as a JSON envelope. One attempt only.
func (s *KafkaSender) Send(ctx context.Context, record *notification.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(envelope{
		OrderID:    record.OrderID().String(),
		Type:       string(record.Type()),
		Recipients: record.Recipients(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(record.OrderID().String()),
		Value: value,
	})
}

// Close releases the underlying Kafka writer.
func (s *KafkaSender) Close() error {
	if closer, ok := s.writer.(*kafka.Writer); ok {
		return closer.Close()
	}
	return errors.New("writer does not support close")
}
