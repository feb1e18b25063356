package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/repository"
)

type MockOutbox struct {
	Events       []*repository.OutboxEvent
	GetErr       error
	ProcessedIDs []string
}

func (m *MockOutbox) Append(_ context.Context, event *repository.OutboxEvent) error {
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutbox) GetUnprocessed(_ context.Context, limit int) ([]*repository.OutboxEvent, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var out []*repository.OutboxEvent
	for _, event := range m.Events {
		if !event.Processed {
			out = append(out, event)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockOutbox) MarkProcessed(_ context.Context, id string) error {
	m.ProcessedIDs = append(m.ProcessedIDs, id)
	for _, event := range m.Events {
		if event.ID == id {
			event.Processed = true
		}
	}
	return nil
}

type MockWriter struct {
	Messages []kafka.Message
	Err      error
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

type MockRecoverer struct {
	Recovered int
	Err       error
	Calls     int
	SeenAge   time.Duration
}

func (m *MockRecoverer) RecoverStuckSessions(_ context.Context, olderThan time.Duration, _ int) (int, error) {
	m.Calls++
	m.SeenAge = olderThan
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Recovered, nil
}

func newTestPoller(outbox *MockOutbox, writer *MockWriter, recoverer *MockRecoverer) *OutboxPoller {
	return &OutboxPoller{
		eventTick:    time.Second,
		recoveryTick: 5 * time.Second,
		stuckAfter:   time.Minute,
		outbox:       outbox,
		recoverer:    recoverer,
		writer:       writer,
		logger:       zerolog.Nop(),
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	outbox := &MockOutbox{
		Events: []*repository.OutboxEvent{
			{
				ID:          "evt-1",
				AggregateID: "order-123",
				EventType:   domain.EventTypeOrderPlaced,
				Payload:     []byte(`{"order_id":"order-123"}`),
				CreatedAt:   time.Now(),
			},
		},
	}
	writer := &MockWriter{}
	poller := newTestPoller(outbox, writer, &MockRecoverer{})

	poller.processUnpublishedEvents(context.Background())

	require.Len(t, writer.Messages, 1)
	msg := writer.Messages[0]
	assert.Equal(t, "order-123", string(msg.Key))
	assert.JSONEq(t, `{"order_id":"order-123"}`, string(msg.Value))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, domain.EventTypeOrderPlaced, string(msg.Headers[0].Value))

	assert.Equal(t, []string{"evt-1"}, outbox.ProcessedIDs)
}

func TestProcessUnpublishedEvents_PublishFailureLeavesEventUnprocessed(t *testing.T) {
	outbox := &MockOutbox{
		Events: []*repository.OutboxEvent{
			{ID: "evt-1", AggregateID: "order-123", EventType: domain.EventTypeOrderPlaced, Payload: []byte(`{}`)},
		},
	}
	writer := &MockWriter{Err: errors.New("broker unreachable")}
	poller := newTestPoller(outbox, writer, &MockRecoverer{})

	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, outbox.ProcessedIDs, "failed publish must stay in the outbox for retry")
	assert.False(t, outbox.Events[0].Processed)
}

func TestProcessUnpublishedEvents_FetchErrorIsHandled(t *testing.T) {
	outbox := &MockOutbox{GetErr: errors.New("database connection error")}
	writer := &MockWriter{}
	poller := newTestPoller(outbox, writer, &MockRecoverer{})

	// should not panic, just log and return
	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, writer.Messages)
}

func TestProcessUnpublishedEvents_SkipsAlreadyProcessed(t *testing.T) {
	outbox := &MockOutbox{
		Events: []*repository.OutboxEvent{
			{ID: "evt-1", AggregateID: "order-1", Processed: true, Payload: []byte(`{}`)},
			{ID: "evt-2", AggregateID: "order-2", Payload: []byte(`{}`)},
		},
	}
	writer := &MockWriter{}
	poller := newTestPoller(outbox, writer, &MockRecoverer{})

	poller.processUnpublishedEvents(context.Background())

	require.Len(t, writer.Messages, 1)
	assert.Equal(t, "order-2", string(writer.Messages[0].Key))
}

func TestRecoverStuckSessions_DelegatesWithCutoff(t *testing.T) {
	recoverer := &MockRecoverer{Recovered: 2}
	poller := newTestPoller(&MockOutbox{}, &MockWriter{}, recoverer)

	poller.recoverStuckSessions(context.Background())

	assert.Equal(t, 1, recoverer.Calls)
	assert.Equal(t, time.Minute, recoverer.SeenAge)
}

func TestRecoverStuckSessions_SweepErrorIsHandled(t *testing.T) {
	recoverer := &MockRecoverer{Err: errors.New("database deadlock")}
	poller := newTestPoller(&MockOutbox{}, &MockWriter{}, recoverer)

	// should not panic, just log error and return
	poller.recoverStuckSessions(context.Background())

	assert.Equal(t, 1, recoverer.Calls)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	poller := newTestPoller(&MockOutbox{}, &MockWriter{}, &MockRecoverer{})
	poller.eventTick = 10 * time.Millisecond
	poller.recoveryTick = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
