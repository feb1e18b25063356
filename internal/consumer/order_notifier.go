// Package consumer reads order events off Kafka and triggers the owner
// notification email for each placed order.
package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/notifier"
	"github.com/az9589317-spec/artghar/internal/publisher"
)

// messageReader is the slice of kafka.Reader the consumer uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
	sender notifier.EmailSender
	logger zerolog.Logger
}

func NewConsumer(sender notifier.EmailSender, logger zerolog.Logger, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    publisher.Topic,
		GroupID:  "order-notifier",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{
		reader: reader,
		sender: sender,
		logger: logger.With().Str("component", "order_consumer").Logger(),
	}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error().Err(err).Msg("error closing kafka reader")
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.logger.Error().Err(err).Msg("error reading message")
		return
	}

	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		c.logger.Error().Err(err).Msg("error parsing message")
		return
	}

	// Email failures are logged and dropped, the order itself is already
	// durable and a human can follow up from the admin dashboard.
	if err := c.sender.SendOrderPlaced(ctx, &event); err != nil {
		c.logger.Error().Err(err).
			Str("order_id", event.OrderID).
			Msg("failed to send order notification")
		return
	}

	c.logger.Info().
		Str("order_id", event.OrderID).
		Str("short_order_id", event.ShortID).
		Msg("order notification delivered")
}
