package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"rms_backend/internal/models"
	"rms_backend/internal/services"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const formatCSV = "csv"

// ReportHandler serves the dashboard and the reports page, as JSON or CSV.
type ReportHandler struct {
	reportService services.ReportService
	exportService services.ExportService
}

func NewReportHandler(rs services.ReportService, es services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: rs, exportService: es}
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.DashboardSummary())
}

// GetReport renders /reports/:type?timeframe=today|week|month|all&format=csv.
func (h *ReportHandler) GetReport(c *gin.Context) {
	report := models.ReportType(c.Param("type"))
	if !models.IsValidReportType(string(report)) {
		utils.RespondValidationFailed(c, fmt.Sprintf("unknown report %q", report))
		return
	}
	tf := models.TimeFrame(c.DefaultQuery("timeframe", string(models.TimeFrameMonth)))
	asCSV := c.Query("format") == formatCSV

	var (
		body  any
		write func(*bytes.Buffer) error
		err   error
	)
	switch report {
	case models.ReportSales, models.ReportCredit:
		var r models.OrderReport
		if report == models.ReportSales {
			r, err = h.reportService.SalesReport(tf)
			write = func(b *bytes.Buffer) error { return h.exportService.WriteSalesCSV(b, r) }
		} else {
			r, err = h.reportService.CreditReport(tf)
			write = func(b *bytes.Buffer) error { return h.exportService.WriteCreditCSV(b, r) }
		}
		body = r
	case models.ReportExpenses:
		var r models.ExpenseReport
		r, err = h.reportService.ExpenseReport(tf)
		write = func(b *bytes.Buffer) error { return h.exportService.WriteExpensesCSV(b, r) }
		body = r
	case models.ReportInventory:
		items := h.reportService.InventoryReport()
		write = func(b *bytes.Buffer) error { return h.exportService.WriteInventoryCSV(b, items) }
		body = items
	}
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}

	if !asCSV {
		c.JSON(http.StatusOK, body)
		return
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		respondError(c, err, "Failed to export report")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ReportFileName(report, tf)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
