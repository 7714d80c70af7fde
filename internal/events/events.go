// Package events carries settled bills and new expenses to optional sinks
// after a command has been applied. Sinks never feed back into the state.
package events

import (
	"context"
	"sync"
	"time"

	"rms_backend/internal/models"
	"rms_backend/pkg/utils"
)

// Type doubles as the routing key on the message broker.
type Type string

const (
	OrderFinalized  Type = "order.finalized"
	OrderCredited   Type = "order.credited"
	ExpenseRecorded Type = "expense.recorded"
)

// Event is published once per settled order or recorded expense.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Order      *models.Order   `json:"order,omitempty"`
	Expense    *models.Expense `json:"expense,omitempty"`
}

// Handler is a sink. Errors are logged by the Bus and otherwise ignored.
type Handler interface {
	Name() string
	Handle(ctx context.Context, e Event) error
}

// Bus fans events out to every subscribed handler in order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus(handlers ...Handler) *Bus {
	return &Bus{handlers: handlers}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Len returns the number of subscribed handlers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Publish delivers each event to every handler synchronously. It returns the
// number of failed deliveries.
func (b *Bus) Publish(ctx context.Context, evts ...Event) int {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers...)
	b.mu.RUnlock()

	failed := 0
	for _, e := range evts {
		for _, h := range handlers {
			if err := h.Handle(ctx, e); err != nil {
				failed++
				utils.LogError(err, "Event sink failed", map[string]interface{}{
					"sink":     h.Name(),
					"event":    string(e.Type),
					"event_id": e.ID,
				})
				continue
			}
			utils.LogDebug("Event delivered", map[string]interface{}{"sink": h.Name(), "event": string(e.Type)})
		}
	}
	return failed
}
