package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"rms_backend/internal/models"
	"rms_backend/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStore struct {
	s state.State
}

func (st staticStore) Snapshot() state.State { return st.s }

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2026, month, day, hour, 0, 0, 0, time.UTC)
}

func reportState() state.State {
	s := state.Seed(testNow)
	s.CompletedOrders = []models.Order{
		{ID: "o-today", TableID: 1, Subtotal: 1000, Tax: 180, Total: 1180, CreatedAt: at(time.October, 19, 9), CustomerName: "John Doe", CustomerPhone: "1234567890"},
		{ID: "o-sunday", TableID: 2, Subtotal: 100, Tax: 18, Total: 118, CreatedAt: at(time.October, 18, 0)},
		{ID: "o-saturday", TableID: 3, Subtotal: 200, Tax: 36, Total: 236, CreatedAt: at(time.October, 17, 23)},
		{ID: "o-september", TableID: 4, Subtotal: 50, Tax: 9, Total: 59, CreatedAt: at(time.September, 30, 20)},
	}
	s.CreditRecords = []models.Order{
		{ID: "c-1", TableID: 5, Total: 647.82, CreatedAt: at(time.October, 2, 13), CustomerName: "Sam Lee", CustomerPhone: "5550000"},
	}
	s.Tables[0].Status = models.TableStatusOccupied
	s.Tables[5].Status = models.TableStatusOccupied
	s.Orders = []models.Order{{ID: "open-1", TableID: 1, CreatedAt: testNow}}
	return s
}

func newTestReportService() ReportService {
	return NewReportService(staticStore{reportState()}, func() time.Time { return testNow })
}

func TestSalesReportTimeFrames(t *testing.T) {
	svc := newTestReportService()
	tests := []struct {
		tf    models.TimeFrame
		ids   []string
		total float64
	}{
		{models.TimeFrameToday, []string{"o-today"}, 1180},
		{models.TimeFrameWeek, []string{"o-today", "o-sunday"}, 1298},
		{models.TimeFrameMonth, []string{"o-today", "o-sunday", "o-saturday"}, 1534},
		{models.TimeFrameAll, []string{"o-today", "o-sunday", "o-saturday", "o-september"}, 1593},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			report, err := svc.SalesReport(tt.tf)
			require.NoError(t, err)
			var ids []string
			for _, o := range report.Orders {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.total, report.Total)
		})
	}

	_, err := svc.SalesReport("year")
	assert.ErrorIs(t, err, ErrInvalidTimeFrame)
}

func TestCreditAndExpenseReports(t *testing.T) {
	svc := newTestReportService()

	credit, err := svc.CreditReport(models.TimeFrameMonth)
	require.NoError(t, err)
	assert.Len(t, credit.Orders, 1)
	assert.Equal(t, 647.82, credit.Total)

	credit, err = svc.CreditReport(models.TimeFrameWeek)
	require.NoError(t, err)
	assert.Empty(t, credit.Orders)
	assert.Zero(t, credit.Total)

	expenses, err := svc.ExpenseReport(models.TimeFrameToday)
	require.NoError(t, err)
	require.Len(t, expenses.Expenses, 1)
	assert.Equal(t, 5000.0, expenses.Total)

	expenses, err = svc.ExpenseReport(models.TimeFrameWeek)
	require.NoError(t, err)
	assert.Equal(t, 13500.0, expenses.Total)
}

func TestInventoryReport(t *testing.T) {
	items := newTestReportService().InventoryReport()
	require.Len(t, items, 9)

	status := map[string]string{}
	for _, it := range items {
		status[it.ItemID] = it.Status
	}
	assert.Equal(t, models.StockStatusOut, status["des002"])
	assert.Equal(t, models.StockStatusIn, status["des001"])
	assert.Equal(t, models.StockStatusLow, StockStatus(10))
	assert.Equal(t, models.StockStatusIn, StockStatus(11))
}

func TestDashboardSummary(t *testing.T) {
	sum := newTestReportService().DashboardSummary()

	assert.Equal(t, 45250.50, sum.TotalSales)
	assert.Equal(t, 5000.0, sum.ExpensesToday)
	assert.Equal(t, 2, sum.OccupiedTables)
	assert.Equal(t, 12, sum.TotalTables)
	assert.Equal(t, 1, sum.ActiveOrders)
	assert.Equal(t, 1, sum.LowStockItemsCount)
	assert.Equal(t, testNow, sum.GeneratedAt)
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportCSV(t *testing.T) {
	reports := newTestReportService()
	export := NewExportService(time.UTC)

	sales, err := reports.SalesReport(models.TimeFrameWeek)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, export.WriteSalesCSV(&buf, sales))
	rows := readCSV(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Order ID", "Date", "Customer Name", "Customer Phone", "Subtotal", "Tax", "Total"}, rows[0])
	assert.Equal(t, []string{"o-today", "2026-10-19 09:00:00", "John Doe", "1234567890", "1000.00", "180.00", "1180.00"}, rows[1])
	assert.Equal(t, "N/A", rows[2][2])
	assert.Equal(t, "N/A", rows[2][3])

	credit, err := reports.CreditReport(models.TimeFrameAll)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, export.WriteCreditCSV(&buf, credit))
	rows = readCSV(t, &buf)
	assert.Equal(t, []string{"Order ID", "Date", "Customer Name", "Customer Phone", "Credit Amount"}, rows[0])
	assert.Equal(t, "647.82", rows[1][4])

	expenses, err := reports.ExpenseReport(models.TimeFrameAll)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, export.WriteExpensesCSV(&buf, expenses))
	rows = readCSV(t, &buf)
	assert.Equal(t, []string{"Expense ID", "Date", "Description", "Category", "Amount"}, rows[0])
	assert.Equal(t, []string{"exp-1", "2026-10-19 12:00:00", "Electricity Bill", "Utilities", "5000.00"}, rows[1])

	buf.Reset()
	require.NoError(t, export.WriteInventoryCSV(&buf, reports.InventoryReport()))
	rows = readCSV(t, &buf)
	assert.Equal(t, []string{"Item ID", "Name", "Category", "Price", "Stock", "Status"}, rows[0])
	assert.Equal(t, []string{"bev001", "Classic Mojito", "Beverages", "349.00", "50", "In Stock"}, rows[1])
	assert.Len(t, rows, 10)
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "sales-report-week.csv", ReportFileName(models.ReportSales, models.TimeFrameWeek))
	assert.Equal(t, "inventory-report.csv", ReportFileName(models.ReportInventory, models.TimeFrameAll))
}
