// Package publisher drains the outbox collection into Kafka and sweeps up
// checkout sessions whose order write never finished.
package publisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/az9589317-spec/artghar/internal/repository"
)

const Topic = "order-events"

// kafkaWriter is the slice of kafka.Writer the poller uses.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// StuckSessionRecoverer retries order placement for payment-verified sessions
// that never reached COMPLETED.
type StuckSessionRecoverer interface {
	RecoverStuckSessions(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}

type OutboxPoller struct {
	eventTick    time.Duration
	recoveryTick time.Duration
	stuckAfter   time.Duration
	outbox       repository.OutboxRepository
	recoverer    StuckSessionRecoverer
	writer       kafkaWriter
	logger       zerolog.Logger
}

func NewOutboxPoller(outbox repository.OutboxRepository, recoverer StuckSessionRecoverer, logger zerolog.Logger, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		eventTick:    time.Second,
		recoveryTick: 5 * time.Second,
		stuckAfter:   time.Minute,
		outbox:       outbox,
		recoverer:    recoverer,
		writer:       w,
		logger:       logger.With().Str("component", "outbox_poller").Logger(),
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	eventTicker := time.NewTicker(p.eventTick)
	recoveryTicker := time.NewTicker(p.recoveryTick)
	defer eventTicker.Stop()
	defer recoveryTicker.Stop()
	for {
		select {
		case <-eventTicker.C:
			p.processUnpublishedEvents(ctx)
		case <-recoveryTicker.C:
			p.recoverStuckSessions(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.outbox.GetUnprocessed(ctx, 100)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to fetch outbox events")
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.logger.Error().Err(err).Str("event_id", event.ID).Msg("failed to publish event")
			continue
		}

		if err := p.outbox.MarkProcessed(ctx, event.ID); err != nil {
			p.logger.Error().Err(err).Str("event_id", event.ID).Msg("failed to mark event processed")
			continue
		}
	}
}

func (p *OutboxPoller) recoverStuckSessions(ctx context.Context) {
	recovered, err := p.recoverer.RecoverStuckSessions(ctx, p.stuckAfter, 50)
	if err != nil {
		p.logger.Error().Err(err).Msg("stuck session sweep failed")
		return
	}
	if recovered > 0 {
		p.logger.Info().Int("count", recovered).Msg("recovered stuck checkout sessions")
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *repository.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id for ordering
		Value: event.Payload,             // already JSON from the outbox
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
