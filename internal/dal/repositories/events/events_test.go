package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/corray333/backend-labs/store/internal/service/models/order"
	"github.com/corray333/backend-labs/store/internal/service/models/orderevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/streadway/amqp"
)

type recordingChannel struct {
	mu   sync.Mutex
	keys []string
	msgs []amqp.Publishing
	err  error
}

func (c *recordingChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, key)
	c.msgs = append(c.msgs, msg)

	return nil
}

func TestPublish_SendsOneMessagePerEvent(t *testing.T) {
	ch := &recordingChannel{}
	repo := NewEventRepository(ch, "orders")

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	evs := []orderevent.Event{
		{Kind: orderevent.KindCreated, OrderID: 1, Status: order.StatusPending, TotalCents: 3500, OccurredAt: at},
		{Kind: orderevent.KindDeleted, OrderID: 2, OccurredAt: at},
	}

	require.NoError(t, repo.Publish(t.Context(), evs))
	require.Len(t, ch.msgs, 2)

	ids := map[string]bool{}
	for i, msg := range ch.msgs {
		assert.Equal(t, "orders", ch.keys[i])
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.NotEmpty(t, msg.MessageId)
		ids[msg.MessageId] = true

		var got orderevent.Event
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, string(got.Kind), msg.Type)
	}
	assert.Len(t, ids, 2)
}

func TestPublish_ReturnsChannelError(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	repo := NewEventRepository(ch, "orders")

	err := repo.Publish(t.Context(), []orderevent.Event{{Kind: orderevent.KindUpdated, OrderID: 7}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestPublish_NoEvents(t *testing.T) {
	ch := &recordingChannel{}
	require.NoError(t, NewEventRepository(ch, "orders").Publish(t.Context(), nil))
	assert.Empty(t, ch.msgs)
}
