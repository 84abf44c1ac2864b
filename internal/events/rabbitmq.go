package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// amqpClient is the part of rabbitmq.Client the publisher needs.
type amqpClient interface {
	Publish(body []byte) error
	Close() error
}

// RabbitMQPublisher publishes order events to the order queue.
type RabbitMQPublisher struct {
	client amqpClient
	logger *zap.Logger
}

func NewRabbitMQPublisher(client amqpClient, logger *zap.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{client: client, logger: logger}
}

func (p *RabbitMQPublisher) PublishOrderPlaced(_ context.Context, event OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	if err := p.client.Publish(body); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	return p.client.Close()
}

// OrderNotificationHandler returns a delivery handler that logs placed orders, standing in for
// the notification step (SMS, email) of a real deployment. Undecodable messages are rejected.
func OrderNotificationHandler(logger *zap.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event OrderPlacedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode order event: %w", err)
		}
		if event.Type != OrderPlacedType {
			logger.Debug("ignoring event", zap.String("type", event.Type))
			return nil
		}
		logger.Info("order placed",
			zap.String("order_id", event.OrderID),
			zap.String("number", event.Number),
			zap.String("customer", event.Customer),
			zap.String("total", event.Total.String()),
			zap.Int("items", event.ItemCount))
		return nil
	}
}
