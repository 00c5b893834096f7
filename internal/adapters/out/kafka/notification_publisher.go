// Package kafka publishes order status notifications to the notification
// topic consumed by the external multi-channel notification service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"rental/internal/core/domain/services"
)

// StatusNotificationPublisher implements NotificationPublisher over a Kafka
// topic. Messages are keyed by order number so all notifications for one
// order land on the same partition in order.
type StatusNotificationPublisher struct {
	writer *kafkago.Writer
}

// NewStatusNotificationPublisher creates a publisher writing to the given
// brokers and topic.
func NewStatusNotificationPublisher(brokers []string, topic string) *StatusNotificationPublisher {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &StatusNotificationPublisher{writer: writer}
}

// Publish sends one notification payload as JSON.
func (p *StatusNotificationPublisher) Publish(
	ctx context.Context,
	notification services.StatusNotification,
) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal status notification: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(notification.OrderNumber),
		Value: payload,
	})
}

// Close closes the underlying Kafka writer.
func (p *StatusNotificationPublisher) Close() error {
	return p.writer.Close()
}
