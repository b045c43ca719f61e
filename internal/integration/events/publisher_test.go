package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail-backoffice/backend/internal/application/adapter"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishExpenseCommitted(t *testing.T) {
	event := adapter.ExpenseCommittedEvent{
		ExpenseID:          "e-1",
		UserID:             "u-1",
		RecurringExpenseID: "r-1",
		Source:             "recurring",
		Category:           "housing",
		Amount:             decimal.RequireFromString("1200.00"),
		Date:               "2026-10-05",
		OccurredAt:         time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}

	t.Run("writes keyed json message", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := &KafkaPublisher{writer: writer}

		require.NoError(t, publisher.PublishExpenseCommitted(context.Background(), event))
		require.Len(t, writer.messages, 1)

		msg := writer.messages[0]
		assert.Equal(t, "u-1", string(msg.Key))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "e-1", decoded["expense_id"])
		assert.Equal(t, "1200", decoded["amount"])
		assert.Equal(t, "2026-10-05", decoded["date"])

		require.NoError(t, publisher.Close())
		assert.True(t, writer.closed)
	})

	t.Run("wraps writer errors", func(t *testing.T) {
		boom := errors.New("broker down")
		publisher := &KafkaPublisher{writer: &fakeWriter{err: boom}}

		err := publisher.PublishExpenseCommitted(context.Background(), event)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("noop publisher", func(t *testing.T) {
		assert.NoError(t, NoopPublisher{}.PublishExpenseCommitted(context.Background(), event))
	})
}
