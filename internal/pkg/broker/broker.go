// Package broker publishes domain events as JSON messages.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/tidyhome/tidyhome-api/internal/pkg/logger"
)

// RabbitMQ publishes to durable queues over a single connection.
// Each publish opens its own channel.
type RabbitMQ struct {
	mu   sync.Mutex
	conn *amqp.Connection
	url  string
}

// NewRabbitMQ dials the broker once at startup.
func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	log.Info().Msg("Connected to RabbitMQ")
	return &RabbitMQ{conn: conn, url: url}, nil
}

// PublishJSON declares queue (durable) and publishes v as a persistent message.
func (b *RabbitMQ) PublishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := b.channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

// channel redials once if the connection was dropped.
func (b *RabbitMQ) channel() (*amqp.Channel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn.IsClosed() {
		conn, err := amqp.Dial(b.url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq redial: %w", err)
		}
		b.conn = conn
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	return ch, nil
}

// Close closes the connection.
func (b *RabbitMQ) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.conn.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing RabbitMQ connection")
		return
	}
	log.Info().Msg("RabbitMQ connection closed")
}

// LogPublisher writes events to the application log instead of a broker.
type LogPublisher struct{}

func (LogPublisher) PublishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("queue", queue).
		RawJSON("event", body).
		Msg("Event published")
	return nil
}
