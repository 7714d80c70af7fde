package services

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"rms_backend/internal/billing"
	"rms_backend/internal/models"
	"rms_backend/pkg/utils"

	"github.com/go-pdf/fpdf"
)

const qrServerURL = "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderNotOpen  = errors.New("order is already settled")
	ErrTableNotFound = errors.New("table not found")
)

// BillConfig names the restaurant on invoices and payment links.
type BillConfig struct {
	RestaurantName string
	UPIID          string
	PublicBaseURL  string
}

// BillService renders what a guest sees at the end of a meal and the QR
// codes that lead to the public menu.
type BillService interface {
	Preview(orderID string) (models.BillPreview, error)
	Split(orderID string, ways int) (models.BillSplit, error)
	PaymentLink(orderID string) (models.PaymentLink, error)
	TableQRCode(tableID int64) (models.TableQRCode, error)
	RenderInvoice(w io.Writer, orderID string) error
}

type billService struct {
	store StateReader
	cfg   BillConfig
}

func NewBillService(store StateReader, cfg BillConfig) BillService {
	if cfg.RestaurantName == "" {
		cfg.RestaurantName = "RMS Pro"
	}
	return &billService{store: store, cfg: cfg}
}

// Preview recomputes an open order with the current taxes. Settled orders
// are returned as billed.
func (s *billService) Preview(orderID string) (models.BillPreview, error) {
	snap := s.store.Snapshot()
	order, ledger, ok := snap.LocateOrder(orderID)
	if !ok {
		return models.BillPreview{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if ledger == models.LedgerOpen {
		return billing.Preview(order, snap.Taxes), nil
	}
	return storedBill(order), nil
}

// storedBill is the bill as last applied to the order. Its tax lines were
// computed together with its totals, so they sum to order.Tax.
func storedBill(order models.Order) models.BillPreview {
	return models.BillPreview{
		OrderID:  order.ID,
		Subtotal: order.Subtotal,
		TaxLines: order.TaxLines,
		Tax:      order.Tax,
		Total:    order.Total,
	}
}

func (s *billService) Split(orderID string, ways int) (models.BillSplit, error) {
	order, _, ok := s.store.Snapshot().LocateOrder(orderID)
	if !ok {
		return models.BillSplit{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	share, err := billing.SplitEvenly(order.Total, ways)
	if err != nil {
		return models.BillSplit{}, err
	}
	return models.BillSplit{OrderID: order.ID, Total: order.Total, Ways: ways, PerPerson: share}, nil
}

func (s *billService) PaymentLink(orderID string) (models.PaymentLink, error) {
	order, ok := s.store.Snapshot().FindOrder(orderID).Get()
	if !ok {
		if _, _, settled := s.store.Snapshot().LocateOrder(orderID); settled {
			return models.PaymentLink{}, fmt.Errorf("%w: %s", ErrOrderNotOpen, orderID)
		}
		return models.PaymentLink{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	link := UPILink(s.cfg.UPIID, s.cfg.RestaurantName, order.Total)
	return models.PaymentLink{
		OrderID:    order.ID,
		Amount:     order.Total,
		UPILink:    link,
		QRImageURL: QRImageURL(link),
	}, nil
}

func (s *billService) TableQRCode(tableID int64) (models.TableQRCode, error) {
	if s.store.Snapshot().FindTable(tableID).IsAbsent() {
		return models.TableQRCode{}, fmt.Errorf("%w: %d", ErrTableNotFound, tableID)
	}
	menuURL := TableMenuURL(s.cfg.PublicBaseURL, tableID)
	return models.TableQRCode{TableID: tableID, MenuURL: menuURL, QRImageURL: QRImageURL(menuURL)}, nil
}

// UPILink builds a UPI intent for amount rupees payable to payee.
func UPILink(payee, name string, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR",
		url.QueryEscape(payee), url.PathEscape(name), utils.FormatAmount(amount))
}

// TableMenuURL is the deep link a table's QR code opens.
func TableMenuURL(baseURL string, tableID int64) string {
	return fmt.Sprintf("%s?page=%s&tableId=%d", strings.TrimRight(baseURL, "/"), models.PageQRMenu, tableID)
}

// QRImageURL returns an image URL of a QR code encoding data.
func QRImageURL(data string) string {
	return qrServerURL + url.QueryEscape(data)
}

// RenderInvoice writes a one page PDF tax invoice for any known order, using
// the totals the guest is asked to pay.
func (s *billService) RenderInvoice(w io.Writer, orderID string) error {
	snap := s.store.Snapshot()
	order, _, ok := snap.LocateOrder(orderID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	bill := storedBill(order)
	tableName := fmt.Sprintf("#%d", order.TableID)
	if t, found := snap.FindTable(order.TableID).Get(); found {
		tableName = t.Name
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.cfg.RestaurantName+" - Tax Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, s.cfg.RestaurantName+" - Tax Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(120, 6, "Order ID: "+order.ID, "", 0, "L", false, 0, "")
	pdf.Ln(6)
	pdf.CellFormat(120, 6, "Table: "+tableName, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Customer: "+orNA(order.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(120, 6, "Date: "+order.CreatedAt.Format(csvDateLayout), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+orNA(order.CustomerPhone), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{90, 20, 35, 35}
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"Item", "Qty", "Rate", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, h, "", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for n, it := range order.Items {
		fill := n%2 == 1
		pdf.SetFillColor(241, 245, 249)
		pdf.CellFormat(widths[0], 7, it.Name, "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", it.Quantity), "", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], 7, rupees(it.Price), "", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 7, rupees(billing.Sum(it.LineTotal())), "", 1, "R", fill, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	totalLine(pdf, "Subtotal:", bill.Subtotal)
	for _, line := range bill.TaxLines {
		totalLine(pdf, fmt.Sprintf("%s (%s%%):", line.Name, formatRate(line.Rate)), line.Amount)
	}
	pdf.SetFont("Helvetica", "B", 14)
	totalLine(pdf, "Total:", bill.Total)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Thank you for dining with us!", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice %s: %w", order.ID, err)
	}
	return nil
}

func totalLine(pdf *fpdf.Fpdf, label string, amount float64) {
	pdf.CellFormat(145, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, rupees(amount), "", 1, "R", false, 0, "")
}

// core PDF fonts have no rupee glyph
func rupees(amount float64) string {
	return "Rs. " + utils.FormatAmount(amount)
}

func formatRate(rate float64) string {
	return strings.TrimSuffix(strings.TrimRight(utils.FormatAmount(rate), "0"), ".")
}
