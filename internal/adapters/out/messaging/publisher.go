package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 3 * time.Second

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = LogPublisher{}
)

// Dial opens an AMQP connection with a bounded connect timeout.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	return conn, nil
}

// Publisher sends events over a single channel, serialising publishes.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher opens a channel and declares the events exchange.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// Publish sends every event and returns the joined failures.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errList []error
	for _, e := range events {
		if err := p.publish(ctx, e); err != nil {
			errList = append(errList, fmt.Errorf("publish %s %s: %w", e.Name(), e.EventID(), err))
		}
	}
	return errors.Join(errList...)
}

func (p *Publisher) publish(ctx context.Context, e kernel.DomainEvent) error {
	body, err := encode(e)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		e.Name(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    e.EventID().String(),
			Type:         e.Name(),
			Timestamp:    e.OccurredAt(),
			Body:         body,
		},
	)
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

// LogPublisher is used when no broker is configured; events are only logged.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if p.Logger == nil {
		return nil
	}
	for _, e := range events {
		p.Logger.DebugContext(ctx, "event dropped, no broker configured",
			"event", e.Name(),
			"event_id", e.EventID().String(),
			"aggregate_id", e.AggregateID().String(),
		)
	}
	return nil
}
