// Package billing derives order totals from line items and tax settings.
package billing

import (
	"errors"
	"fmt"

	"rms_backend/internal/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidSplit = errors.New("bill must be split at least one way")

var hundred = decimal.NewFromInt(100)

// Totals is the derived money state of an order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums price*quantity over items and applies every enabled tax
// independently on that subtotal. Taxes are not compounded. Each amount is
// rounded to two decimals and Total is the sum of the rounded parts.
func ComputeTotals(items []models.OrderItem, taxes []models.Tax) Totals {
	subtotal := subtotalOf(items)
	tax := decimal.Zero
	for _, t := range taxes {
		if !t.Enabled {
			continue
		}
		tax = tax.Add(taxOn(subtotal, t.Rate))
	}

	sub := subtotal.Round(2)
	tax = tax.Round(2)
	return Totals{
		Subtotal: sub.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    sub.Add(tax).InexactFloat64(),
	}
}

// Apply stores freshly computed totals on the order.
func Apply(order *models.Order, taxes []models.Tax) {
	t := ComputeTotals(order.Items, taxes)
	order.Subtotal = t.Subtotal
	order.Tax = t.Tax
	order.TaxLines = Breakdown(t.Subtotal, taxes)
	order.Total = t.Total
}

// Breakdown returns the amount each enabled tax contributes on subtotal.
func Breakdown(subtotal float64, taxes []models.Tax) []models.TaxLine {
	base := decimal.NewFromFloat(subtotal)
	lines := make([]models.TaxLine, 0, len(taxes))
	for _, t := range taxes {
		if !t.Enabled {
			continue
		}
		lines = append(lines, models.TaxLine{
			Name:   t.Name,
			Rate:   t.Rate,
			Amount: taxOn(base, t.Rate).Round(2).InexactFloat64(),
		})
	}
	return lines
}

// Preview recomputes an order's bill with the given taxes without touching the order.
func Preview(order models.Order, taxes []models.Tax) models.BillPreview {
	t := ComputeTotals(order.Items, taxes)
	return models.BillPreview{
		OrderID:  order.ID,
		Subtotal: t.Subtotal,
		TaxLines: Breakdown(t.Subtotal, taxes),
		Tax:      t.Tax,
		Total:    t.Total,
	}
}

// SplitEvenly divides total into ways equal shares rounded to two decimals.
func SplitEvenly(total float64, ways int) (float64, error) {
	if ways < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSplit, ways)
	}
	share := decimal.NewFromFloat(total).Div(decimal.NewFromInt(int64(ways))).Round(2)
	return share.InexactFloat64(), nil
}

func subtotalOf(items []models.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func taxOn(base decimal.Decimal, rate float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(rate)).Div(hundred)
}

// Sum adds money amounts and rounds the result to two decimals.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}
