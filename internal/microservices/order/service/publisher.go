package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-floor/internal/connections/rabbitmq"
	"restaurant-floor/internal/domain"
)

// TicketPublisher hands committed orders to the kitchen.
type TicketPublisher interface {
	PublishOrderPlaced(ctx context.Context, msg domain.OrderPlacedMessage) error
}

// NopTicketPublisher is used when no broker is configured.
type NopTicketPublisher struct{}

func (NopTicketPublisher) PublishOrderPlaced(context.Context, domain.OrderPlacedMessage) error {
	return nil
}

type publisher interface {
	Publish(ctx context.Context, exchange, key string, pub amqp.Publishing) error
}

// RabbitTicketPublisher publishes tickets to the orders topic exchange.
type RabbitTicketPublisher struct {
	client  publisher
	timeout time.Duration
}

func NewRabbitTicketPublisher(client *rabbitmq.Client) *RabbitTicketPublisher {
	return &RabbitTicketPublisher{client: client, timeout: 5 * time.Second}
}

func (p *RabbitTicketPublisher) PublishOrderPlaced(ctx context.Context, msg domain.OrderPlacedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal kitchen ticket: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	pub := amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		Body:          body,
		MessageId:     uuid.NewString(),
		CorrelationId: fmt.Sprintf("order-%d", msg.OrderID),
		Timestamp:     time.Now().UTC(),
		Headers: amqp.Table{
			"x-source": "order-service",
		},
	}
	if err := p.client.Publish(ctx, rabbitmq.OrdersExchange, TicketRoutingKey(msg.TableID), pub); err != nil {
		return fmt.Errorf("failed to publish kitchen ticket: %w", err)
	}
	return nil
}

func TicketRoutingKey(tableID int64) string {
	return fmt.Sprintf("kitchen.table.%d", tableID)
}
