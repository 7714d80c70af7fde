package models

import "time"

// Order represents a bill attached to a table. Open orders live in the state's
// order list; settled ones move to the completed or credit ledger.
type Order struct {
	ID            string      `json:"id"`
	TableID       int64       `json:"table_id"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	TaxLines      []TaxLine   `json:"tax_lines,omitempty"`
	Total         float64     `json:"total"`
	CreatedAt     time.Time   `json:"created_at"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
}

// HasCustomer reports whether both customer name and phone were captured.
func (o Order) HasCustomer() bool {
	return o.CustomerName != "" && o.CustomerPhone != ""
}

// Ledger names the collection an order currently lives in.
type Ledger string

const (
	LedgerOpen      Ledger = "open"
	LedgerCompleted Ledger = "completed"
	LedgerCredit    Ledger = "credit"
)

// BillPreview is a freshly computed bill for an order using the current tax settings.
type BillPreview struct {
	OrderID  string    `json:"order_id"`
	Subtotal float64   `json:"subtotal"`
	TaxLines []TaxLine `json:"tax_lines"`
	Tax      float64   `json:"tax"`
	Total    float64   `json:"total"`
}

// TaxLine is the amount one enabled tax contributes to a bill.
type TaxLine struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// BillSplit describes an even split of an order total.
type BillSplit struct {
	OrderID   string  `json:"order_id"`
	Total     float64 `json:"total"`
	Ways      int     `json:"ways"`
	PerPerson float64 `json:"per_person"`
}

// PaymentLink carries a UPI deep link and a QR image that encodes it.
type PaymentLink struct {
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
	UPILink    string  `json:"upi_link"`
	QRImageURL string  `json:"qr_image_url"`
}

// TableQRCode carries the public menu deep link for a table and its QR image.
type TableQRCode struct {
	TableID    int64  `json:"table_id"`
	MenuURL    string `json:"menu_url"`
	QRImageURL string `json:"qr_image_url"`
}
