//go:build unit

package eventbus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"book-rental/internal/infra/eventbus"
	"book-rental/internal/usecase/shared"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	failAt   int
	closed   bool
}

func (w *fakeWriter) WriteMessage(_ context.Context, msg kafka.Message) error {
	if w.failAt > 0 && len(w.messages)+1 == w.failAt {
		return errors.New("leader not available")
	}
	w.messages = append(w.messages, msg)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent(kind shared.EventKind) shared.RentalEvent {
	return shared.RentalEvent{
		ID:          uuid.New(),
		Kind:        kind,
		HeaderID:    uuid.New(),
		OwnerID:     "owner-1",
		BookID:      uuid.New(),
		Status:      "pending",
		AmountCents: 1400,
		OccurredAt:  time.Date(2025, 3, 1, 9, 0, 0, 123456789, time.UTC),
	}
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("one message per event keyed by rental id", func(t *testing.T) {
		w := &fakeWriter{}
		p := eventbus.NewKafkaPublisherWithWriter(w)
		events := []shared.RentalEvent{
			sampleEvent(shared.EventRentalCreated),
			sampleEvent(shared.EventRentalConfirmed),
		}

		require.NoError(t, p.Publish(ctx, events))
		require.Len(t, w.messages, 2)

		for i, msg := range w.messages {
			e := events[i]
			assert.Equal(t, e.HeaderID.String(), string(msg.Key))
			assert.Equal(t, string(e.Kind), header(msg, "event_kind"))
			assert.Equal(t, e.ID.String(), header(msg, "event_id"))
			assert.Equal(t, e.OccurredAt.Truncate(time.Millisecond), msg.Time)

			var decoded shared.RentalEvent
			require.NoError(t, jsoniter.Unmarshal(msg.Value, &decoded))
			assert.Equal(t, e.ID, decoded.ID)
			assert.Equal(t, e.Kind, decoded.Kind)
			assert.Equal(t, e.AmountCents, decoded.AmountCents)
		}
	})

	t.Run("stops at the first failed write", func(t *testing.T) {
		w := &fakeWriter{failAt: 2}
		p := eventbus.NewKafkaPublisherWithWriter(w)
		events := []shared.RentalEvent{
			sampleEvent(shared.EventRentalCreated),
			sampleEvent(shared.EventRentalReturned),
			sampleEvent(shared.EventRentalExpired),
		}

		err := p.Publish(ctx, events)
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(shared.EventRentalReturned))
		assert.Len(t, w.messages, 1)
	})

	t.Run("close closes the writer", func(t *testing.T) {
		w := &fakeWriter{}
		require.NoError(t, eventbus.NewKafkaPublisherWithWriter(w).Close())
		assert.True(t, w.closed)
	})
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	p := eventbus.NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))
	e := sampleEvent(shared.EventRentalExpired)

	require.NoError(t, p.Publish(context.Background(), []shared.RentalEvent{e}))
	assert.Contains(t, buf.String(), `"kind":"rental.expired"`)
	assert.Contains(t, buf.String(), e.HeaderID.String())
	assert.NoError(t, p.Close())
}
