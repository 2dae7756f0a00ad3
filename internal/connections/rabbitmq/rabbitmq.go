package rabbitmq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/config"
)

const (
	dialRetries = 10
	dialDelay   = 2 * time.Second
)

// ErrNack is returned when the broker refuses a published message.
var ErrNack = errors.New("publish NACK from broker")

const (
	OrdersExchange     = "orders_topic"
	DeadLetterExchange = "dlx"
	KitchenQueue       = "kitchen.q"
	DeadLetterQueue    = "dlq"
	KitchenBindingKey  = "kitchen.#"
)

// Client owns one connection and one channel in confirm mode. Publishes
// may run concurrently; each waits for the confirm of its own delivery tag.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// URL renders the AMQP URL for cfg, escaping credentials and vhost.
func URL(cfg config.RabbitMQConfig) string {
	vhost := cfg.VHost
	if vhost == "" {
		vhost = "/"
	}
	scheme := "amqp"
	if cfg.UseTLS {
		scheme = "amqps"
	}
	u := url.URL{
		Scheme:  scheme,
		User:    url.UserPassword(cfg.User, cfg.Password),
		Host:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:    "/" + vhost,
		RawPath: "/" + url.PathEscape(vhost),
	}
	return u.String()
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	if cfg.UseTLS {
		conn, err = amqp.DialTLS(URL(cfg), &tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		conn, err = amqp.Dial(URL(cfg))
	}
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Client{conn: conn, ch: ch}, nil
}

// DialRetry keeps dialing until the broker answers, ctx is done or the
// attempts run out.
func DialRetry(ctx context.Context, cfg config.RabbitMQConfig, lg *logger.Logger) (*Client, error) {
	var err error
	for i := 1; i <= dialRetries; i++ {
		var c *Client
		if c, err = Dial(cfg); err == nil {
			lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Host, "port": cfg.Port, "attempt": i})
			return c, nil
		}
		lg.Warn("rabbitmq_connect_retry", err, map[string]any{"attempt": i})

		select {
		case <-time.After(dialDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("rabbitmq connect canceled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("rabbitmq unreachable after %d attempts: %w", dialRetries, err)
}

func (c *Client) Ping() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopology declares the exchanges and queues both the order service
// and the kitchen worker rely on. Safe to call repeatedly.
func (c *Client) DeclareTopology() error {
	if c == nil || c.ch == nil {
		return errors.New("nil channel")
	}
	if err := c.ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", OrdersExchange, err)
	}
	if err := c.ch.ExchangeDeclare(DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DeadLetterExchange, err)
	}
	if _, err := c.ch.QueueDeclare(KitchenQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterQueue,
	}); err != nil {
		return fmt.Errorf("declare %s: %w", KitchenQueue, err)
	}
	if _, err := c.ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DeadLetterQueue, err)
	}
	if err := c.ch.QueueBind(KitchenQueue, KitchenBindingKey, OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", KitchenQueue, err)
	}
	if err := c.ch.QueueBind(DeadLetterQueue, DeadLetterQueue, DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", DeadLetterQueue, err)
	}
	return nil
}

// Publish sends pub and waits for the broker's ack or nack of that message.
func (c *Client) Publish(ctx context.Context, exchange, key string, pub amqp.Publishing) error {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, pub)
	if err != nil {
		return err
	}
	if dc == nil {
		return errors.New("channel is not in confirm mode")
	}
	return awaitConfirm(ctx, dc)
}

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

func awaitConfirm(ctx context.Context, dc confirmation) error {
	ack, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await publish confirm: %w", err)
	}
	if !ack {
		return ErrNack
	}
	return nil
}

func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

// NotifyClose reports when the broker closes the channel.
func (c *Client) NotifyClose() <-chan *amqp.Error {
	return c.ch.NotifyClose(make(chan *amqp.Error, 1))
}

// Cancel stops deliveries to consumer. Already delivered messages stay on
// the delivery channel until it closes.
func (c *Client) Cancel(consumer string) error {
	return c.ch.Cancel(consumer, false)
}
