// Package rabbitmq publishes integration events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"laundry/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialTimeout = 10 * time.Second

// EventProducer implements ports.EventPublisher. The exchange is declared once
// on connect; each message is a persistent JSON body.
type EventProducer struct {
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewEventProducer dials the broker and declares a durable topic exchange.
func NewEventProducer(amqpURL, exchange string, logger *slog.Logger) (*EventProducer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cleanURL, err := sanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(exchange) == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, errs.NewUnavailableError("event bus", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.NewUnavailableError("event bus", err)
	}

	if err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &EventProducer{
		exchange: exchange,
		logger:   logger.With("component", "event-producer"),
		conn:     conn,
		channel:  channel,
	}, nil
}

// Publish marshals payload to JSON and sends it with the routing key.
func (p *EventProducer) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		return errs.NewUnavailableError("event bus", errors.New("channel is closed"))
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return errs.NewUnavailableError("event bus", err)
	}

	p.logger.Debug("published event", "exchange", p.exchange, "routing_key", routingKey)
	return nil
}

// Close releases channel and connection resources.
func (p *EventProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var closeErrs []error
	if p.channel != nil {
		closeErrs = append(closeErrs, p.channel.Close())
		p.channel = nil
	}
	if p.conn != nil {
		closeErrs = append(closeErrs, p.conn.Close())
		p.conn = nil
	}
	return errors.Join(closeErrs...)
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) NopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return NopPublisher{logger: logger.With("component", "event-producer")}
}

func (p NopPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.logger.Debug("event bus disabled, dropping event", "routing_key", routingKey)
	return nil
}

// sanitizeURL tolerates quoted values and leading noise from env files.
func sanitizeURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("amqp url", err)
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", errs.NewValueIsInvalidErrorWithCause("amqp url", errors.New("scheme must be amqp or amqps"))
	}
	return clean, nil
}
