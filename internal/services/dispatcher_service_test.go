package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"rms_backend/internal/events"
	"rms_backend/internal/models"
	"rms_backend/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) // a Monday

type recordingBroadcaster struct {
	mu    sync.Mutex
	pages []models.Page
}

func (b *recordingBroadcaster) Broadcast(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pages = append(b.pages, v.(state.State).Page())
}

type recordingSink struct {
	mu  sync.Mutex
	got []events.Event
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Handle(_ context.Context, e events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, e)
	return nil
}

func newTestDispatcher(opts ...DispatcherOption) DispatcherService {
	return NewDispatcherService(state.Seed(testNow), opts...)
}

func TestDispatchAppliesAndBroadcasts(t *testing.T) {
	b := &recordingBroadcaster{}
	d := newTestDispatcher(WithBroadcaster(b))
	ctx := context.Background()

	next, err := d.Dispatch(ctx, state.OpenTable{TableID: 4})
	require.NoError(t, err)
	assert.Equal(t, models.PageOrder, next.Page())
	assert.Equal(t, next.ActiveOrderID, d.Snapshot().ActiveOrderID)

	_, err = d.Dispatch(ctx, state.SetPage{View: models.MenuView{}})
	require.NoError(t, err)

	assert.Equal(t, []models.Page{models.PageOrder, models.PageMenu}, b.pages)
}

func TestDispatchRejectionKeepsSnapshot(t *testing.T) {
	b := &recordingBroadcaster{}
	d := newTestDispatcher(WithBroadcaster(b))
	before := d.Snapshot()

	got, err := d.Dispatch(context.Background(), state.AddCustomer{Name: "Dup", Phone: "1234567890"})

	assert.ErrorIs(t, err, state.ErrDuplicatePhone)
	assert.Equal(t, before, got)
	assert.Equal(t, before, d.Snapshot())
	assert.Empty(t, b.pages)
}

func TestDispatchHonoursCancelledContext(t *testing.T) {
	d := newTestDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, state.AddCategory{Name: "Brunch"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, d.Snapshot().Categories, "Brunch")
}

func TestConcurrentDispatchConservesStock(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()
	_, err := d.Dispatch(ctx, state.OpenTable{TableID: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Dispatch(ctx, state.AddItemToOrder{ItemID: "bev002"})
		}()
	}
	wg.Wait()

	snap := d.Snapshot()
	order := snap.ActiveOrder().MustGet()
	require.Len(t, order.Items, 1)
	assert.Equal(t, 40, order.Items[0].Quantity)
	assert.Equal(t, 60, snap.FindMenuItem("bev002").MustGet().Stock)
	assert.Equal(t, 5960.0, order.Subtotal)
}

func TestDispatchPublishesEvents(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(WithEventBus(events.NewBus(sink)))
	ctx := context.Background()

	open, err := d.Dispatch(ctx, state.OpenTable{TableID: 2})
	require.NoError(t, err)
	_, err = d.Dispatch(ctx, state.AddItemToOrder{ItemID: "app002"})
	require.NoError(t, err)
	_, err = d.Dispatch(ctx, state.FinalizeBill{OrderID: open.ActiveOrderID})
	require.NoError(t, err)
	_, err = d.Dispatch(ctx, state.PaySalaries{})
	require.NoError(t, err)
	d.Drain()

	require.Len(t, sink.got, 2)
	types := []events.Type{sink.got[0].Type, sink.got[1].Type}
	assert.ElementsMatch(t, []events.Type{events.OrderFinalized, events.ExpenseRecorded}, types)
	for _, e := range sink.got {
		if e.Type == events.OrderFinalized {
			require.NotNil(t, e.Order)
			assert.Equal(t, 270.22, e.Order.Total)
		}
	}
}

func TestDeriveEvents(t *testing.T) {
	r := state.NewReducer()
	s := state.Seed(testNow)
	s, err := r.Apply(s, state.OpenTable{TableID: 1})
	require.NoError(t, err)
	orderID := s.ActiveOrderID

	credited, err := r.Apply(s, state.MoveToCredit{OrderID: orderID})
	require.NoError(t, err)
	evts := DeriveEvents(s, credited, state.MoveToCredit{OrderID: orderID}, testNow)
	require.Len(t, evts, 1)
	assert.Equal(t, events.OrderCredited, evts[0].Type)
	assert.Equal(t, orderID, evts[0].Order.ID)
	assert.Equal(t, testNow, evts[0].OccurredAt)
	assert.NotEmpty(t, evts[0].ID)

	withExpense, err := r.Apply(s, state.AddExpense{Description: "Gas", Amount: 900, Category: models.ExpenseCategoryUtilities})
	require.NoError(t, err)
	evts = DeriveEvents(s, withExpense, state.AddExpense{}, testNow)
	require.Len(t, evts, 1)
	assert.Equal(t, "Gas", evts[0].Expense.Description)

	assert.Empty(t, DeriveEvents(s, s, state.AddCategory{Name: "x"}, testNow))
}
