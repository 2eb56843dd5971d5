package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notice is the confirmation derived from one event.
type Notice struct {
	UserID  string
	Subject string
	Body    string
}

// Consumer listens to the ticket and booking queues and turns each
// message into a confirmation notice on the log.
type Consumer struct {
	url    string
	logger *slog.Logger
}

// NewConsumer returns a Consumer for the broker at url.
func NewConsumer(url string, logger *slog.Logger) *Consumer {
	return &Consumer{url: url, logger: logger.With("component", "consumer")}
}

// Run connects and consumes until ctx is cancelled, reconnecting with
// exponential backoff (capped at 30s) whenever the broker goes away.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("dial failed", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("consume loop ended; reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warn("set QoS failed", "error", err)
	}

	merged := make(chan amqp.Delivery)
	done := make(chan struct{})
	defer close(done)
	for _, q := range []string{TicketPurchasedQueue, BookingCreatedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", q, err)
		}
		go forward(msgs, merged, done)
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr != nil {
				return amqpErr
			}
			return errors.New("channel closed")
		case d := <-merged:
			notice, err := HandleMessage(d.RoutingKey, d.Body)
			if err != nil {
				c.logger.Error("handle message failed", "queue", d.RoutingKey, "error", err)
				noticesHandled.WithLabelValues(d.RoutingKey, "rejected").Inc()
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			c.logger.Info(notice.Subject, "user_id", notice.UserID, "notice", notice.Body)
			noticesHandled.WithLabelValues(d.RoutingKey, "ok").Inc()
			_ = d.Ack(false)
		}
	}
}

// forward copies deliveries into merged until msgs closes or the consume
// loop that owns merged has returned.
func forward(msgs <-chan amqp.Delivery, merged chan<- amqp.Delivery, done <-chan struct{}) {
	for d := range msgs {
		select {
		case merged <- d:
		case <-done:
			return
		}
	}
}

// HandleMessage decodes a message body from queue into a Notice.
func HandleMessage(queue string, body []byte) (Notice, error) {
	switch queue {
	case TicketPurchasedQueue:
		var ev TicketPurchasedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return Notice{}, fmt.Errorf("unmarshal: %w", err)
		}
		if ev.TicketID == "" || ev.UserID == "" {
			return Notice{}, errors.New("ticket event missing ids")
		}
		return Notice{
			UserID:  ev.UserID,
			Subject: "ticket purchase confirmed",
			Body: fmt.Sprintf("ticket_id=%s | type=%s | date=%s | price=%.2f | purchased_at=%s",
				ev.TicketID, ev.Type, ev.TicketDate, ev.Price, ev.PurchasedAt),
		}, nil
	case BookingCreatedQueue:
		var ev BookingCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return Notice{}, fmt.Errorf("unmarshal: %w", err)
		}
		if ev.BookingID == "" || ev.UserID == "" {
			return Notice{}, errors.New("booking event missing ids")
		}
		return Notice{
			UserID:  ev.UserID,
			Subject: "booking confirmed",
			Body: fmt.Sprintf("booking_id=%s | activity=%s | date=%s | created_at=%s",
				ev.BookingID, ev.BookingType, ev.BookingDate, ev.CreatedAt),
		}, nil
	}
	return Notice{}, fmt.Errorf("unknown queue %q", queue)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
