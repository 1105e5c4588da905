package reports

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

func at(y int, m time.Month, d, h, min, s, ms int) time.Time {
	return time.Date(y, m, d, h, min, s, ms*int(time.Millisecond), time.Local)
}

func order(id string, date time.Time, total float64) models.Order {
	return models.Order{ID: id, Date: date, Total: total, Subtotal: total, Method: models.PaymentCash,
		Items: []models.OrderItem{{Quantity: 1, Price: total}}}
}

func ids(orders []models.Order) []string {
	out := []string{}
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestSalesSummary(t *testing.T) {
	now := at(2024, 3, 15, 14, 0, 0, 0)
	orders := []models.Order{
		order("today-late", at(2024, 3, 15, 13, 0, 0, 0), 10),
		order("today-midnight", at(2024, 3, 15, 0, 0, 0, 0), 5),
		order("yesterday", at(2024, 3, 14, 23, 59, 59, 999), 20),
		order("month-start", at(2024, 3, 1, 0, 0, 0, 0), 40),
		order("last-month", at(2024, 2, 29, 23, 59, 59, 0), 80),
	}
	products := []models.Product{{ID: "1", Stock: 0}, {ID: "2", Stock: 3}, {ID: "3", Stock: 0}}

	s := SalesSummary(orders, products, now)
	assert.Equal(t, 15.0, s.TodaySales)
	assert.Equal(t, 75.0, s.MonthlySales)
	assert.Equal(t, 5, s.OrderCount)
	assert.Equal(t, 2, s.OutOfStock)
}

func TestOutOfStock(t *testing.T) {
	products := []models.Product{{ID: "1", Stock: 0}, {ID: "2", Stock: 1}, {ID: "3", Stock: 0}}
	got := OutOfStock(products)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Empty(t, OutOfStock(nil))
}

func TestFilterByDate(t *testing.T) {
	orders := []models.Order{
		order("feb", at(2024, 2, 1, 0, 0, 0, 0), 1),
		order("jan-end-last-ms", at(2024, 1, 31, 23, 59, 59, 999), 1),
		order("jan-mid", at(2024, 1, 15, 12, 0, 0, 0), 1),
		order("jan-start", at(2024, 1, 1, 0, 0, 0, 0), 1),
		order("dec", at(2023, 12, 31, 23, 59, 59, 999), 1),
	}
	start := at(2024, 1, 1, 0, 0, 0, 0)
	end := at(2024, 1, 31, 0, 0, 0, 0)

	tests := []struct {
		name       string
		start, end *time.Time
		want       []string
	}{
		{"both bounds", &start, &end, []string{"jan-end-last-ms", "jan-mid", "jan-start"}},
		{"start only", &start, nil, []string{"feb", "jan-end-last-ms", "jan-mid", "jan-start"}},
		{"end only", nil, &end, []string{"jan-end-last-ms", "jan-mid", "jan-start", "dec"}},
		{"open", nil, nil, []string{"feb", "jan-end-last-ms", "jan-mid", "jan-start", "dec"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByDate(orders, tt.start, tt.end)))
		})
	}
}

func TestCustomerHistory(t *testing.T) {
	a, b := "1", "2"
	o1 := order("o1", at(2024, 1, 1, 9, 0, 0, 0), 10)
	o1.CustomerID = &a
	o2 := order("o2", at(2024, 1, 3, 9, 0, 0, 0), 15.5)
	o2.CustomerID = &a
	o3 := order("o3", at(2024, 1, 2, 9, 0, 0, 0), 99)
	o3.CustomerID = &b
	o4 := order("walk-in", at(2024, 1, 4, 9, 0, 0, 0), 7)

	h := CustomerHistory(models.Customer{ID: "1", Name: "Sarah"}, []models.Order{o1, o3, o2, o4})
	assert.Equal(t, []string{"o2", "o1"}, ids(h.Orders))
	assert.Equal(t, 25.5, h.TotalSpent)

	none := CustomerHistory(models.Customer{ID: "9"}, []models.Order{o1})
	assert.NotNil(t, none.Orders)
	assert.Empty(t, none.Orders)
	assert.Zero(t, none.TotalSpent)
}

func TestInventoryReport(t *testing.T) {
	products := []models.Product{
		{ID: "1", Price: 10, Stock: 3},
		{ID: "2", Price: 2.5, Stock: 0},
		{ID: "3", Price: 1.25, Stock: 4},
	}
	inv := InventoryReport(products, true)
	assert.Equal(t, 3, inv.Items)
	assert.Equal(t, 7, inv.Units)
	assert.Equal(t, 1, inv.OutOfStock)
	assert.Equal(t, 35.0, inv.Value)
	require.NotNil(t, inv.Financials)
	assert.Equal(t, Financials{Liabilities: 12000, Equity: 35 - 12000, NetProfit: 5400, Loss: 200}, *inv.Financials)

	staff := InventoryReport(products, false)
	assert.Equal(t, 35.0, staff.Value)
	assert.Nil(t, staff.Financials)
}

func TestSalesReportCSV(t *testing.T) {
	o1 := models.Order{
		ID:       "aaaa-1",
		Date:     at(2024, 1, 31, 18, 5, 9, 0),
		Items:    []models.OrderItem{{Quantity: 2, Price: 10}, {Quantity: 1, Price: 5}},
		Subtotal: 25,
		Tax:      2,
		Total:    27,
		Method:   models.PaymentGPay,
	}
	o2 := models.Order{ID: "bbbb-2", Date: at(2024, 1, 2, 8, 0, 0, 0), Items: []models.OrderItem{{Quantity: 1, Price: 4}}, Subtotal: 4, Tax: 0.32, Total: 4.32}

	got, err := SalesReportCSV([]models.Order{o1, o2})
	require.NoError(t, err)
	want := strings.Join([]string{
		"Order ID,Date,Items Count,Subtotal,Tax (GST),Total,Payment Method",
		"aaaa-1,2024-01-31 18:05:09,3,$25.00,$2.00,$27.00,gpay",
		"bbbb-2,2024-01-02 08:00:00,1,$4.00,$0.32,$4.32,Unknown",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSalesReportCSV_Empty(t *testing.T) {
	_, err := SalesReportCSV(nil)
	assert.True(t, errors.Is(err, ErrNoOrders))
}

func TestSalesReportFilename(t *testing.T) {
	ts := time.UnixMilli(1706724309123)
	assert.Equal(t, "sales_report_1706724309123.csv", SalesReportFilename(ts))
}
