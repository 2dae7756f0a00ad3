package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-floor/internal/connections/rabbitmq"
	"restaurant-floor/internal/domain"
)

type recordingClient struct {
	exchange, key string
	pub           amqp.Publishing
	err           error
}

func (r *recordingClient) Publish(_ context.Context, exchange, key string, pub amqp.Publishing) error {
	r.exchange, r.key, r.pub = exchange, key, pub
	return r.err
}

func TestRabbitTicketPublisher(t *testing.T) {
	client := &recordingClient{}
	p := &RabbitTicketPublisher{client: client, timeout: time.Second}

	msg := domain.OrderPlacedMessage{
		OrderID: 4, TableID: 3, OrderedAt: fixedNow,
		Items: []domain.OrderPlacedLineItem{{OrderItemID: 9, ItemID: 5, Quantity: 2}},
	}
	if err := p.PublishOrderPlaced(context.Background(), msg); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if client.exchange != rabbitmq.OrdersExchange || client.key != "kitchen.table.3" {
		t.Fatalf("published to %s/%s", client.exchange, client.key)
	}
	if client.pub.DeliveryMode != amqp.Persistent || client.pub.ContentType != "application/json" || client.pub.MessageId == "" {
		t.Fatalf("publishing = %+v", client.pub)
	}
	var got domain.OrderPlacedMessage
	if err := json.Unmarshal(client.pub.Body, &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.OrderID != 4 || len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("body = %+v", got)
	}
}

func TestRabbitTicketPublisherError(t *testing.T) {
	p := &RabbitTicketPublisher{client: &recordingClient{err: errors.New("nack")}, timeout: time.Second}
	if err := p.PublishOrderPlaced(context.Background(), domain.OrderPlacedMessage{OrderID: 1, TableID: 1}); err == nil {
		t.Fatal("expected error")
	}
}
