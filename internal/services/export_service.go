package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"rms_backend/internal/models"
	"rms_backend/pkg/utils"
)

const csvDateLayout = "2006-01-02 15:04:05"

var (
	salesCSVHeader     = []string{"Order ID", "Date", "Customer Name", "Customer Phone", "Subtotal", "Tax", "Total"}
	creditCSVHeader    = []string{"Order ID", "Date", "Customer Name", "Customer Phone", "Credit Amount"}
	expensesCSVHeader  = []string{"Expense ID", "Date", "Description", "Category", "Amount"}
	inventoryCSVHeader = []string{"Item ID", "Name", "Category", "Price", "Stock", "Status"}
)

// ExportService writes reports as CSV.
type ExportService interface {
	WriteSalesCSV(w io.Writer, report models.OrderReport) error
	WriteCreditCSV(w io.Writer, report models.OrderReport) error
	WriteExpensesCSV(w io.Writer, report models.ExpenseReport) error
	WriteInventoryCSV(w io.Writer, items []models.InventoryReportItem) error
}

type exportService struct {
	loc *time.Location
}

// NewExportService creates an ExportService rendering dates in loc (UTC when nil).
func NewExportService(loc *time.Location) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{loc: loc}
}

// ReportFileName is the download name for a report, e.g. sales-report-month.csv.
func ReportFileName(report models.ReportType, tf models.TimeFrame) string {
	if report == models.ReportInventory {
		return "inventory-report.csv"
	}
	return fmt.Sprintf("%s-report-%s.csv", report, tf)
}

func (s *exportService) WriteSalesCSV(w io.Writer, report models.OrderReport) error {
	rows := make([][]string, 0, len(report.Orders))
	for _, o := range report.Orders {
		rows = append(rows, []string{
			o.ID, s.date(o.CreatedAt), orNA(o.CustomerName), orNA(o.CustomerPhone),
			utils.FormatAmount(o.Subtotal), utils.FormatAmount(o.Tax), utils.FormatAmount(o.Total),
		})
	}
	return writeCSV(w, salesCSVHeader, rows)
}

func (s *exportService) WriteCreditCSV(w io.Writer, report models.OrderReport) error {
	rows := make([][]string, 0, len(report.Orders))
	for _, o := range report.Orders {
		rows = append(rows, []string{
			o.ID, s.date(o.CreatedAt), orNA(o.CustomerName), orNA(o.CustomerPhone), utils.FormatAmount(o.Total),
		})
	}
	return writeCSV(w, creditCSVHeader, rows)
}

func (s *exportService) WriteExpensesCSV(w io.Writer, report models.ExpenseReport) error {
	rows := make([][]string, 0, len(report.Expenses))
	for _, e := range report.Expenses {
		rows = append(rows, []string{
			e.ID, s.date(e.Date), e.Description, string(e.Category), utils.FormatAmount(e.Amount),
		})
	}
	return writeCSV(w, expensesCSVHeader, rows)
}

func (s *exportService) WriteInventoryCSV(w io.Writer, items []models.InventoryReportItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ItemID, it.Name, it.Category, utils.FormatAmount(it.Price), strconv.Itoa(it.Stock), it.Status,
		})
	}
	return writeCSV(w, inventoryCSVHeader, rows)
}

func (s *exportService) date(t time.Time) string {
	return t.In(s.loc).Format(csvDateLayout)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
