package services

import (
	"math"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// Totals is the monetary breakdown of a cart or an order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals calculates subtotal, tax and total for cart lines.
// Values are kept unrounded; callers format to 2 decimals for display.
func ComputeTotals(items []models.CartItem, taxRate float64) Totals {
	var t Totals
	for i := range items {
		t.Subtotal += items[i].LineTotal()
	}
	t.Tax = t.Subtotal * taxRate
	t.Total = t.Subtotal + t.Tax
	return t
}

// ComputeOrderTotals does the same over snapshot order lines.
func ComputeOrderTotals(items []models.OrderItem, taxRate float64) Totals {
	var t Totals
	for i := range items {
		t.Subtotal += items[i].LineTotal()
	}
	t.Tax = t.Subtotal * taxRate
	t.Total = t.Subtotal + t.Tax
	return t
}

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
