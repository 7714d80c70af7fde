package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"rms_backend/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	name string
	err  error

	mu  sync.Mutex
	got []Event
}

func (h *recordingHandler) Name() string { return h.name }

func (h *recordingHandler) Handle(_ context.Context, e Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, e)
	return h.err
}

func TestBusPublish(t *testing.T) {
	ok := &recordingHandler{name: "ok"}
	broken := &recordingHandler{name: "broken", err: errors.New("down")}
	bus := NewBus(ok)
	bus.Subscribe(broken)
	require.Equal(t, 2, bus.Len())

	order := models.Order{ID: "order-1", Total: 1230}
	failed := bus.Publish(context.Background(),
		Event{ID: "e1", Type: OrderFinalized, Order: &order},
		Event{ID: "e2", Type: ExpenseRecorded, Expense: &models.Expense{ID: "exp-3"}},
	)

	assert.Equal(t, 2, failed)
	require.Len(t, ok.got, 2)
	assert.Equal(t, OrderFinalized, ok.got[0].Type)
	assert.Len(t, broken.got, 2, "a failing sink does not stop delivery")
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQPPublisherHandle(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: DefaultExchange}

	order := models.Order{ID: "order-7", TableID: 3, Total: 647.82}
	err := p.Handle(context.Background(), Event{
		ID:         "evt-1",
		Type:       OrderCredited,
		OccurredAt: time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC),
		Order:      &order,
	})
	require.NoError(t, err)

	assert.Equal(t, "rms.events", ch.exchange)
	assert.Equal(t, "order.credited", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "evt-1", ch.msg.MessageId)

	var decoded Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	require.NotNil(t, decoded.Order)
	assert.Equal(t, 647.82, decoded.Order.Total)
	assert.Nil(t, decoded.Expense)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
