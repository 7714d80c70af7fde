package services

import (
	"errors"
	"fmt"
	"time"

	"rms_backend/internal/billing"
	"rms_backend/internal/models"

	"github.com/samber/lo"
)

var ErrInvalidTimeFrame = errors.New("invalid time frame, use one of today, week, month, all")

// ReportService derives dashboard figures and reports from the current snapshot.
type ReportService interface {
	DashboardSummary() models.DashboardSummary
	SalesReport(tf models.TimeFrame) (models.OrderReport, error)
	CreditReport(tf models.TimeFrame) (models.OrderReport, error)
	ExpenseReport(tf models.TimeFrame) (models.ExpenseReport, error)
	InventoryReport() []models.InventoryReportItem
}

type reportService struct {
	store StateReader
	now   func() time.Time
}

// NewReportService creates a ReportService. A nil clock uses time.Now.
func NewReportService(store StateReader, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{store: store, now: now}
}

func (s *reportService) DashboardSummary() models.DashboardSummary {
	snap := s.store.Snapshot()
	now := s.now()

	today := lo.Filter(snap.Expenses, func(e models.Expense, _ int) bool { return sameDay(e.Date, now) })
	return models.DashboardSummary{
		TotalSales:         snap.TotalSales,
		ExpensesToday:      billing.Sum(lo.Map(today, func(e models.Expense, _ int) float64 { return e.Amount })...),
		OccupiedTables:     lo.CountBy(snap.Tables, func(t models.Table) bool { return t.Status == models.TableStatusOccupied }),
		TotalTables:        len(snap.Tables),
		ActiveOrders:       len(snap.Orders),
		LowStockItemsCount: lo.CountBy(snap.Menu, func(m models.MenuItem) bool { return m.Stock <= models.LowStockThreshold }),
		GeneratedAt:        now,
	}
}

func (s *reportService) SalesReport(tf models.TimeFrame) (models.OrderReport, error) {
	return s.orderReport(tf, s.store.Snapshot().CompletedOrders)
}

func (s *reportService) CreditReport(tf models.TimeFrame) (models.OrderReport, error) {
	return s.orderReport(tf, s.store.Snapshot().CreditRecords)
}

func (s *reportService) orderReport(tf models.TimeFrame, orders []models.Order) (models.OrderReport, error) {
	in, err := s.window(tf)
	if err != nil {
		return models.OrderReport{}, err
	}
	matched := lo.Filter(orders, func(o models.Order, _ int) bool { return in(o.CreatedAt) })
	return models.OrderReport{
		TimeFrame: tf,
		Orders:    matched,
		Total:     billing.Sum(lo.Map(matched, func(o models.Order, _ int) float64 { return o.Total })...),
	}, nil
}

func (s *reportService) ExpenseReport(tf models.TimeFrame) (models.ExpenseReport, error) {
	in, err := s.window(tf)
	if err != nil {
		return models.ExpenseReport{}, err
	}
	matched := lo.Filter(s.store.Snapshot().Expenses, func(e models.Expense, _ int) bool { return in(e.Date) })
	return models.ExpenseReport{
		TimeFrame: tf,
		Expenses:  matched,
		Total:     billing.Sum(lo.Map(matched, func(e models.Expense, _ int) float64 { return e.Amount })...),
	}, nil
}

func (s *reportService) InventoryReport() []models.InventoryReportItem {
	return lo.Map(s.store.Snapshot().Menu, func(m models.MenuItem, _ int) models.InventoryReportItem {
		return models.InventoryReportItem{
			ItemID:   m.ID,
			Name:     m.Name,
			Category: m.Category,
			Price:    m.Price,
			Stock:    m.Stock,
			Status:   StockStatus(m.Stock),
		}
	})
}

// StockStatus labels a stock level for the inventory report.
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return models.StockStatusOut
	case stock <= models.LowStockThreshold:
		return models.StockStatusLow
	default:
		return models.StockStatusIn
	}
}

// window returns the membership test for a time frame. Weeks start on
// Sunday at midnight; today and month compare calendar fields in the
// clock's location.
func (s *reportService) window(tf models.TimeFrame) (func(time.Time) bool, error) {
	now := s.now()
	switch tf {
	case models.TimeFrameToday:
		return func(t time.Time) bool { return sameDay(t, now) }, nil
	case models.TimeFrameWeek:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start := midnight.AddDate(0, 0, -int(now.Weekday()))
		return func(t time.Time) bool { return !t.Before(start) }, nil
	case models.TimeFrameMonth:
		return func(t time.Time) bool {
			t = t.In(now.Location())
			return t.Year() == now.Year() && t.Month() == now.Month()
		}, nil
	case models.TimeFrameAll:
		return func(time.Time) bool { return true }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeFrame, tf)
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
