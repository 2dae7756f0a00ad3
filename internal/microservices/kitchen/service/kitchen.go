package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/rabbitmq"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/kitchen/repository"
)

var (
	ErrRequeue = errors.New("requeue")     // nack(requeue=true)
	ErrDLQ     = errors.New("dead_letter") // nack(requeue=false)
)

type KitchenServiceInterface interface {
	Run(ctx context.Context) error
}

// consumer is the part of the broker client the worker needs.
type consumer interface {
	DeclareTopology() error
	Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error)
	Cancel(consumer string) error
	NotifyClose() <-chan *amqp.Error
}

type KitchenService struct {
	db repository.KitchenRepositoryInterface
	mq consumer
	lg *logger.Logger

	WorkerName string
	Queue      string
	Prefetch   int
}

func NewKitchenService(db repository.KitchenRepositoryInterface, mq consumer, lg *logger.Logger, workerName string, prefetch int) *KitchenService {
	if prefetch <= 0 {
		prefetch = 1
	}
	return &KitchenService{
		db:         db,
		mq:         mq,
		lg:         lg,
		WorkerName: workerName,
		Queue:      rabbitmq.KitchenQueue,
		Prefetch:   prefetch,
	}
}

func (ks *KitchenService) Run(ctx context.Context) error {
	if strings.TrimSpace(ks.WorkerName) == "" {
		return fmt.Errorf("worker name is empty: pass --worker-name")
	}
	if err := ks.mq.DeclareTopology(); err != nil {
		return err
	}

	closed := ks.mq.NotifyClose()
	msgs, err := ks.mq.Consume(ks.Queue, ks.WorkerName, ks.Prefetch)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ks.Queue, err)
	}
	ks.lg.Info("kitchen_consuming", map[string]any{"queue": ks.Queue, "prefetch": ks.Prefetch, "worker": ks.WorkerName})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range msgs {
			ks.settle(d, ks.processOne(ctx, d))
		}
	}()

	select {
	case <-ctx.Done():
	case <-done:
		select {
		case amqpErr := <-closed:
			return channelClosed(amqpErr)
		default:
		}
		return errors.New("delivery channel closed by broker")
	case amqpErr := <-closed:
		// the library closes msgs along with the channel
		<-done
		return channelClosed(amqpErr)
	}
	ks.lg.Info("graceful_shutdown", map[string]any{"worker": ks.WorkerName})

	// stop new deliveries, then drain what is already buffered
	if err := ks.mq.Cancel(ks.WorkerName); err != nil {
		ks.lg.Error("consumer_cancel_failed", err, map[string]any{"worker": ks.WorkerName})
	}
	<-done
	return nil
}

func channelClosed(amqpErr *amqp.Error) error {
	if amqpErr == nil {
		return errors.New("rabbitmq channel closed")
	}
	return fmt.Errorf("rabbitmq channel closed: %w", amqpErr)
}

func (ks *KitchenService) settle(d amqp.Delivery, err error) {
	var ackErr error
	switch {
	case err == nil:
		ackErr = d.Ack(false)
	case errors.Is(err, ErrDLQ):
		ks.lg.Warn("ticket_dead_lettered", err, map[string]any{"message_id": d.MessageId, "routing_key": d.RoutingKey})
		ackErr = d.Nack(false, false)
	default:
		ks.lg.Error("ticket_requeued", err, map[string]any{"message_id": d.MessageId})
		ackErr = d.Nack(false, true)
	}
	if ackErr != nil {
		ks.lg.Error("ticket_settle_failed", ackErr, map[string]any{"message_id": d.MessageId})
	}
}

// processOne validates a ticket. Undecodable tickets and tickets for
// orders that do not exist are dead-lettered; storage errors requeue.
func (ks *KitchenService) processOne(ctx context.Context, d amqp.Delivery) error {
	var msg domain.OrderPlacedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return fmt.Errorf("%w: decode ticket: %v", ErrDLQ, err)
	}
	if msg.OrderID <= 0 || len(msg.Items) == 0 {
		return fmt.Errorf("%w: ticket has no order id or items", ErrDLQ)
	}

	n, err := ks.db.CountLines(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequeue, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: order %d not found", ErrDLQ, msg.OrderID)
	}
	if n != len(msg.Items) {
		ks.lg.Warn("ticket_line_mismatch", nil, map[string]any{"order_id": msg.OrderID, "ticket_lines": len(msg.Items), "stored_lines": n})
	}

	qty := 0
	for _, it := range msg.Items {
		qty += it.Quantity
	}
	ks.lg.Info("ticket_received", map[string]any{
		"order_id":   msg.OrderID,
		"table_id":   msg.TableID,
		"lines":      len(msg.Items),
		"quantity":   qty,
		"ordered_at": msg.OrderedAt,
		"worker":     ks.WorkerName,
	})
	return nil
}
