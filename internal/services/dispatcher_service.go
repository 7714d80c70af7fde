package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"rms_backend/internal/events"
	"rms_backend/internal/models"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/google/uuid"
)

// StateReader hands out immutable snapshots of the restaurant state.
type StateReader interface {
	Snapshot() state.State
}

// Broadcaster pushes a value to every connected live view.
type Broadcaster interface {
	Broadcast(v any)
}

// DispatcherService is the single owner of the state. Commands are applied
// one at a time; readers get the latest committed snapshot.
type DispatcherService interface {
	StateReader
	Dispatch(ctx context.Context, cmd state.Command) (state.State, error)
	// Drain blocks until every pending event delivery has finished.
	Drain()
}

type dispatcherService struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	current  state.State

	reducer     state.Reducer
	bus         *events.Bus
	broadcaster Broadcaster
	sinks       sync.WaitGroup
}

// DispatcherOption customizes a dispatcher at construction time.
type DispatcherOption func(*dispatcherService)

func WithReducer(r state.Reducer) DispatcherOption {
	return func(d *dispatcherService) { d.reducer = r }
}

func WithEventBus(bus *events.Bus) DispatcherOption {
	return func(d *dispatcherService) { d.bus = bus }
}

func WithBroadcaster(b Broadcaster) DispatcherOption {
	return func(d *dispatcherService) { d.broadcaster = b }
}

// NewDispatcherService creates a dispatcher owning initial.
func NewDispatcherService(initial state.State, opts ...DispatcherOption) DispatcherService {
	d := &dispatcherService{current: initial, reducer: state.NewReducer()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *dispatcherService) Snapshot() state.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *dispatcherService) Dispatch(ctx context.Context, cmd state.Command) (state.State, error) {
	if cmd == nil {
		return d.Snapshot(), state.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return d.Snapshot(), err
	}

	d.mu.Lock()
	prev := d.current
	next, err := d.reducer.Apply(prev, cmd)
	if err != nil {
		d.mu.Unlock()
		logRejected(cmd, err)
		return prev, err
	}
	d.current = next
	// hand over to the notifier before releasing the state so broadcasts keep command order
	d.notifyMu.Lock()
	d.mu.Unlock()

	utils.LogInfo("Command applied", map[string]interface{}{
		"command":      cmd.Kind(),
		"page":         string(next.Page()),
		"open_orders":  len(next.Orders),
		"total_sales":  next.TotalSales,
		"active_order": next.ActiveOrderID,
	})

	if d.broadcaster != nil {
		d.broadcaster.Broadcast(next)
	}
	d.notifyMu.Unlock()

	if d.bus != nil {
		if evts := DeriveEvents(prev, next, cmd, time.Now()); len(evts) > 0 {
			d.sinks.Add(1)
			go func() {
				defer d.sinks.Done()
				d.bus.Publish(context.WithoutCancel(ctx), evts...)
			}()
		}
	}
	return next, nil
}

func (d *dispatcherService) Drain() {
	d.sinks.Wait()
}

func logRejected(cmd state.Command, err error) {
	fields := map[string]interface{}{"command": cmd.Kind(), "reason": err.Error()}
	if errors.Is(err, state.ErrPrecondition) {
		utils.LogDebug("Command ignored", fields)
		return
	}
	utils.LogWarn("Command rejected", fields)
}

// DeriveEvents lists what a successful transition settled or recorded.
func DeriveEvents(prev, next state.State, cmd state.Command, at time.Time) []events.Event {
	newEvent := func(t events.Type) events.Event {
		return events.Event{ID: uuid.NewString(), Type: t, OccurredAt: at}
	}

	switch c := cmd.(type) {
	case state.FinalizeBill:
		if order, ledger, ok := next.LocateOrder(c.OrderID); ok && ledger == models.LedgerCompleted {
			e := newEvent(events.OrderFinalized)
			e.Order = &order
			return []events.Event{e}
		}
	case state.MoveToCredit:
		if order, ledger, ok := next.LocateOrder(c.OrderID); ok && ledger == models.LedgerCredit {
			e := newEvent(events.OrderCredited)
			e.Order = &order
			return []events.Event{e}
		}
	case state.AddExpense, state.PaySalaries:
		if len(next.Expenses) > len(prev.Expenses) {
			expense := next.Expenses[0]
			e := newEvent(events.ExpenseRecorded)
			e.Expense = &expense
			return []events.Event{e}
		}
	}
	return nil
}
