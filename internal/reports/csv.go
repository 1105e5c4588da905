package reports

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// ErrNoOrders is returned when there is nothing to export.
var ErrNoOrders = errors.New("no orders found to download")

// DateLayout is how order dates appear in the sales report.
const DateLayout = "2006-01-02 15:04:05"

var salesHeader = []string{"Order ID", "Date", "Items Count", "Subtotal", "Tax (GST)", "Total", "Payment Method"}

// SalesReportCSV renders one row per order. Fields are not quoted.
func SalesReportCSV(orders []models.Order) (string, error) {
	if len(orders) == 0 {
		return "", ErrNoOrders
	}
	lines := make([]string, 0, len(orders)+1)
	lines = append(lines, strings.Join(salesHeader, ","))
	for i := range orders {
		o := &orders[i]
		lines = append(lines, strings.Join([]string{
			o.ID,
			o.Date.Local().Format(DateLayout),
			strconv.Itoa(o.ItemsCount()),
			money(o.Subtotal),
			money(o.Tax),
			money(o.Total),
			methodCode(o.Method),
		}, ","))
	}
	return strings.Join(lines, "\n"), nil
}

// SalesReportFilename names the export after the moment it was taken.
func SalesReportFilename(now time.Time) string {
	return fmt.Sprintf("sales_report_%d.csv", now.UnixMilli())
}

func methodCode(m models.PaymentMethod) string {
	if m == "" {
		return "Unknown"
	}
	return string(m)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
