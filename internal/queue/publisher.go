package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultPublishTimeout bounds one Publish call, dial and handshake
// included.
const DefaultPublishTimeout = 2 * time.Second

// Publisher sends events to RabbitMQ. Each call dials, declares the
// durable queue and publishes a persistent message; traffic is low enough
// that a long-lived channel is not worth its reconnect logic.
type Publisher struct {
	url     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, logger *slog.Logger) *Publisher {
	return &Publisher{
		url:     url,
		timeout: DefaultPublishTimeout,
		logger:  logger.With("component", "publisher"),
	}
}

// Publish delivers ev to its queue. It gives up after the publish timeout
// or when ctx ends, whichever comes first, so a stalled broker cannot hold
// the request that produced the event. Errors are logged and returned so
// the caller can decide to ignore them.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.publish(ctx, ev); err != nil {
		p.logger.Warn("publish failed", "queue", ev.QueueName(), "error", err)
		eventsPublished.WithLabelValues(ev.QueueName(), "error").Inc()
		return err
	}
	p.logger.Debug("event published", "queue", ev.QueueName())
	eventsPublished.WithLabelValues(ev.QueueName(), "ok").Inc()
	return nil
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	deadline, _ := ctx.Deadline()
	wait := time.Until(deadline)
	if wait <= 0 {
		return fmt.Errorf("dial: %w", context.DeadlineExceeded)
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial:   amqp.DefaultDial(wait),
		Locale: "en_US",
	})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(ev.QueueName(), true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	return ch.PublishWithContext(ctx,
		"",             // default exchange
		ev.QueueName(), // routing key = queue name
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
