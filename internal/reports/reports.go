// Package reports derives sales and inventory views from the ledger and the
// catalog. Nothing here is cached; every view is recomputed from its inputs.
package reports

import (
	"sort"
	"time"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// Summary holds the dashboard figures.
type Summary struct {
	TodaySales   float64 `json:"today_sales"`
	MonthlySales float64 `json:"monthly_sales"`
	OrderCount   int     `json:"order_count"`
	OutOfStock   int     `json:"out_of_stock"`
}

// StartOfDay is local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// StartOfMonth is local midnight on the first of t's month.
func StartOfMonth(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// EndOfDay is the last millisecond of t's local day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// SalesSince sums order totals dated at or after from.
func SalesSince(orders []models.Order, from time.Time) float64 {
	var sum float64
	for i := range orders {
		if !orders[i].Date.Before(from) {
			sum += orders[i].Total
		}
	}
	return sum
}

// SalesSummary computes today's and this month's sales relative to now.
func SalesSummary(orders []models.Order, products []models.Product, now time.Time) Summary {
	return Summary{
		TodaySales:   SalesSince(orders, StartOfDay(now)),
		MonthlySales: SalesSince(orders, StartOfMonth(now)),
		OrderCount:   len(orders),
		OutOfStock:   len(OutOfStock(products)),
	}
}

// OutOfStock lists catalog items with no units on hand, in catalog order.
func OutOfStock(products []models.Product) []models.Product {
	var out []models.Product
	for i := range products {
		if !products[i].InStock() {
			out = append(out, products[i])
		}
	}
	return out
}

// FilterByDate keeps orders within [start, end] where end covers its whole
// day through 23:59:59.999. A nil bound is open. Order is preserved.
func FilterByDate(orders []models.Order, start, end *time.Time) []models.Order {
	var from, to time.Time
	if start != nil {
		from = StartOfDay(*start)
	}
	if end != nil {
		to = EndOfDay(*end)
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if start != nil && o.Date.Before(from) {
			continue
		}
		if end != nil && o.Date.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// History is one customer's purchases.
type History struct {
	Customer   models.Customer `json:"customer"`
	Orders     []models.Order  `json:"orders"`
	TotalSpent float64         `json:"total_spent"`
}

// CustomerHistory returns the customer's orders, newest first by date.
func CustomerHistory(c models.Customer, orders []models.Order) History {
	h := History{Customer: c, Orders: []models.Order{}}
	for _, o := range orders {
		if o.BelongsTo(c.ID) {
			h.Orders = append(h.Orders, o)
			h.TotalSpent += o.Total
		}
	}
	sort.SliceStable(h.Orders, func(i, j int) bool {
		return h.Orders[i].Date.After(h.Orders[j].Date)
	})
	return h
}

// Book figures shown next to the stock value. They are fixed amounts, not
// derived from the ledger.
const (
	BookLiabilities = 12000.0
	BookNetProfit   = 5400.0
	BookLoss        = 200.0
)

// Inventory is the stock overview.
type Inventory struct {
	Products   []models.Product `json:"products"`
	Items      int              `json:"items"`
	Units      int              `json:"units"`
	OutOfStock int              `json:"out_of_stock"`
	Value      float64          `json:"total_value"`
	// Financials is omitted for roles that may not see the books.
	Financials *Financials `json:"financials,omitempty"`
}

// Financials are the admin-only balance figures. Equity is the stock value
// less liabilities.
type Financials struct {
	Liabilities float64 `json:"liabilities"`
	Equity      float64 `json:"equity"`
	NetProfit   float64 `json:"net_profit"`
	Loss        float64 `json:"loss"`
}

// InventoryValue sums price times stock over the catalog.
func InventoryValue(products []models.Product) float64 {
	var v float64
	for i := range products {
		v += products[i].StockValue()
	}
	return v
}

// InventoryReport builds the stock overview; withFinancials controls whether
// the balance figures are included.
func InventoryReport(products []models.Product, withFinancials bool) Inventory {
	inv := Inventory{Products: products, Items: len(products), Value: InventoryValue(products)}
	for i := range products {
		inv.Units += products[i].Stock
		if !products[i].InStock() {
			inv.OutOfStock++
		}
	}
	if withFinancials {
		inv.Financials = &Financials{
			Liabilities: BookLiabilities,
			Equity:      inv.Value - BookLiabilities,
			NetProfit:   BookNetProfit,
			Loss:        BookLoss,
		}
	}
	return inv
}
