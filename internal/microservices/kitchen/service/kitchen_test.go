package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/domain"
)

type fakeRepo struct {
	lines map[int64]int
	err   error
}

func (f *fakeRepo) CountLines(_ context.Context, orderID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.lines[orderID], nil
}

// recorder settles deliveries and reports each outcome on settled.
type recorder struct {
	settled chan string
}

func (r *recorder) Ack(uint64, bool) error {
	r.settled <- "ack"
	return nil
}
func (r *recorder) Nack(_ uint64, _ bool, requeue bool) error {
	if requeue {
		r.settled <- "requeue"
	} else {
		r.settled <- "dlq"
	}
	return nil
}
func (r *recorder) Reject(uint64, bool) error {
	r.settled <- "reject"
	return nil
}

type fakeBroker struct {
	msgs     chan amqp.Delivery
	closed   chan *amqp.Error
	once     sync.Once
	declared bool
}

// shutdown mimics the broker closing the channel: the close is reported
// and the delivery channel ends.
func (b *fakeBroker) shutdown(err *amqp.Error) {
	b.closed <- err
	b.once.Do(func() { close(b.msgs) })
}

func (b *fakeBroker) DeclareTopology() error {
	b.declared = true
	return nil
}
func (b *fakeBroker) Consume(string, string, int) (<-chan amqp.Delivery, error) {
	return b.msgs, nil
}
func (b *fakeBroker) Cancel(string) error {
	b.once.Do(func() { close(b.msgs) })
	return nil
}
func (b *fakeBroker) NotifyClose() <-chan *amqp.Error {
	if b.closed == nil {
		b.closed = make(chan *amqp.Error, 1)
	}
	return b.closed
}

func ticket(t *testing.T, orderID int64, lines int) []byte {
	t.Helper()
	msg := domain.OrderPlacedMessage{OrderID: orderID, TableID: 3, OrderedAt: time.Now().UTC()}
	for i := 0; i < lines; i++ {
		msg.Items = append(msg.Items, domain.OrderPlacedLineItem{OrderItemID: int64(i + 1), ItemID: 5, Quantity: 1})
	}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newTestService(repo *fakeRepo, broker *fakeBroker) *KitchenService {
	return NewKitchenService(repo, broker, logger.NewWithWriter("test", io.Discard, "debug"), "kitchen-1", 0)
}

func TestProcessOne(t *testing.T) {
	ks := newTestService(&fakeRepo{lines: map[int64]int{7: 2}}, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		body []byte
		want error
	}{
		{"valid", ticket(t, 7, 2), nil},
		{"malformed", []byte("{not json"), ErrDLQ},
		{"no items", ticket(t, 7, 0), ErrDLQ},
		{"no order id", ticket(t, 0, 1), ErrDLQ},
		{"unknown order", ticket(t, 8, 1), ErrDLQ},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ks.processOne(ctx, amqp.Delivery{Body: c.body})
			if c.want == nil && err != nil {
				t.Fatalf("err = %v", err)
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}

	ks = newTestService(&fakeRepo{err: errors.New("db down")}, nil)
	if err := ks.processOne(ctx, amqp.Delivery{Body: ticket(t, 7, 1)}); !errors.Is(err, ErrRequeue) {
		t.Fatalf("storage error = %v, want requeue", err)
	}
}

func TestRunSettlesAndDrains(t *testing.T) {
	rec := &recorder{settled: make(chan string, 3)}
	broker := &fakeBroker{msgs: make(chan amqp.Delivery, 3)}
	broker.msgs <- amqp.Delivery{Acknowledger: rec, DeliveryTag: 1, Body: ticket(t, 7, 1)}
	broker.msgs <- amqp.Delivery{Acknowledger: rec, DeliveryTag: 2, Body: []byte("garbage")}
	broker.msgs <- amqp.Delivery{Acknowledger: rec, DeliveryTag: 3, Body: ticket(t, 9, 1)}

	ks := newTestService(&fakeRepo{lines: map[int64]int{7: 1}}, broker)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- ks.Run(ctx) }()

	var got []string
	for i := 0; i < 3; i++ {
		select {
		case s := <-rec.settled:
			got = append(got, s)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %v", got)
		}
	}
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	want := []string{"ack", "dlq", "dlq"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("settled = %v, want %v", got, want)
		}
	}
	if !broker.declared {
		t.Fatal("topology not declared")
	}
}

func TestRunRequiresWorkerName(t *testing.T) {
	ks := newTestService(&fakeRepo{}, &fakeBroker{msgs: make(chan amqp.Delivery)})
	ks.WorkerName = " "
	if err := ks.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunReturnsWhenChannelCloses(t *testing.T) {
	broker := &fakeBroker{msgs: make(chan amqp.Delivery), closed: make(chan *amqp.Error, 1)}
	ks := newTestService(&fakeRepo{}, broker)
	errc := make(chan error, 1)
	go func() { errc <- ks.Run(context.Background()) }()

	broker.shutdown(&amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restart"})

	select {
	case err := <-errc:
		var amqpErr *amqp.Error
		if !errors.As(err, &amqpErr) || amqpErr.Code != amqp.ConnectionForced {
			t.Fatalf("err = %v, want wrapped channel close", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after channel close")
	}
}
