package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kawther/internal/config"
	"kawther/internal/models"
	"kawther/pkg/rabbitmq"
)

const OrderPlacedType = "order.placed"

// OrderPlacedEvent is published once an order has been committed.
type OrderPlacedEvent struct {
	EventID   string             `json:"event_id"`
	Type      string             `json:"type"`
	OrderID   string             `json:"order_id"`
	Number    string             `json:"number"`
	Status    models.OrderStatus `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
	Customer  string             `json:"customer"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewOrderPlacedEvent builds the event for order.
func NewOrderPlacedEvent(order *models.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventID:   uuid.New().String(),
		Type:      OrderPlacedType,
		OrderID:   order.ID,
		Number:    order.Number,
		Status:    order.Status,
		Total:     order.Totals.Total,
		ItemCount: len(order.Items),
		Customer:  order.Customer.Name,
		CreatedAt: order.CreatedAt,
	}
}

// Publisher delivers order events to a broker.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlacedEvent) error { return nil }
func (NopPublisher) Close() error                                               { return nil }

// NewPublisher connects the broker selected in cfg.
func NewPublisher(cfg config.EventsConfig, logger *zap.Logger) (Publisher, error) {
	switch cfg.Broker {
	case "", "none":
		return NopPublisher{}, nil
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: rabbitmq.OrderQueue}, logger)
		if err != nil {
			return nil, err
		}
		return NewRabbitMQPublisher(client, logger), nil
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	}
	return nil, fmt.Errorf("unsupported events broker %q", cfg.Broker)
}
