package models

import "time"

// ReportType selects one of the reports page tabs
type ReportType string

const (
	ReportSales     ReportType = "sales"
	ReportInventory ReportType = "inventory"
	ReportCredit    ReportType = "credit"
	ReportExpenses  ReportType = "expenses"
)

// IsValidReportType checks if the provided string is a valid ReportType.
func IsValidReportType(r string) bool {
	switch ReportType(r) {
	case ReportSales, ReportInventory, ReportCredit, ReportExpenses:
		return true
	default:
		return false
	}
}

// TimeFrame restricts a report to a date window
type TimeFrame string

const (
	TimeFrameToday TimeFrame = "today"
	TimeFrameWeek  TimeFrame = "week"
	TimeFrameMonth TimeFrame = "month"
	TimeFrameAll   TimeFrame = "all"
)

// IsValidTimeFrame checks if the provided string is a valid TimeFrame.
func IsValidTimeFrame(tf string) bool {
	switch TimeFrame(tf) {
	case TimeFrameToday, TimeFrameWeek, TimeFrameMonth, TimeFrameAll:
		return true
	default:
		return false
	}
}

// Stock status labels used by the inventory report
const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
	StockStatusIn  = "In Stock"

	LowStockThreshold = 10
)

// OrderReport lists settled orders (sales or credit) within a time frame.
type OrderReport struct {
	TimeFrame TimeFrame `json:"time_frame"`
	Orders    []Order   `json:"orders"`
	Total     float64   `json:"total"`
}

// ExpenseReport lists expenses within a time frame.
type ExpenseReport struct {
	TimeFrame TimeFrame `json:"time_frame"`
	Expenses  []Expense `json:"expenses"`
	Total     float64   `json:"total"`
}

// InventoryReportItem represents one menu item's stock position.
type InventoryReportItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Status   string  `json:"status"` // "Out of Stock", "Low Stock" or "In Stock"
}

// DashboardSummary holds key metrics for the dashboard.
type DashboardSummary struct {
	TotalSales         float64   `json:"total_sales"`
	ExpensesToday      float64   `json:"expenses_today"`
	OccupiedTables     int       `json:"occupied_tables"`
	TotalTables        int       `json:"total_tables"`
	ActiveOrders       int       `json:"active_orders"`
	LowStockItemsCount int       `json:"low_stock_items_count"`
	GeneratedAt        time.Time `json:"generated_at"`
}
