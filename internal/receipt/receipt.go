// Package receipt renders completed orders as a CSV download and as a
// printable plain-text slip.
package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

const width = 40

// Money formats an amount as $X.XX.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// MethodLabel is the display name of the method, Cash when unset.
func MethodLabel(m models.PaymentMethod) string {
	if m == "" {
		return models.PaymentCash.Label()
	}
	return m.Label()
}

// Filename is the download name of the receipt CSV for o.
func Filename(o models.Order) string {
	return "receipt_" + o.ID + ".csv"
}

// CSV renders the receipt rows. Fields are joined with commas without
// quoting, so a comma inside a product name shifts its row.
func CSV(o models.Order) string {
	rows := [][]string{{"Item", "Quantity", "Price", "Total"}}
	for _, item := range o.Items {
		rows = append(rows, []string{
			item.Name,
			strconv.Itoa(item.Quantity),
			Money(item.Price),
			Money(item.LineTotal()),
		})
	}
	rows = append(rows,
		nil,
		[]string{"Subtotal", "", "", Money(o.Subtotal)},
		[]string{"Tax (GST)", "", "", Money(o.Tax)},
		[]string{"Total", "", "", Money(o.Total)},
	)

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Join(r, ",")
	}
	return strings.Join(lines, "\n")
}

// Render lays out the printable receipt.
func Render(o models.Order, shop models.ShopDetails) string {
	var lines []string
	rule := strings.Repeat("-", width)

	lines = append(lines,
		center(strings.ToUpper(shop.Name)),
		center(shop.Address),
		center("Phone: "+shop.Phone),
		center("Email: "+shop.Email),
		center("GSTIN: "+shop.TaxID),
		rule,
		pair("Date:", o.Date.Local().Format(time.DateTime)),
		pair("Receipt #:", o.ShortID()),
		pair("Payment Method:", MethodLabel(o.Method)),
		rule,
		columns("Item", "Qty", "Amount"),
	)
	for _, item := range o.Items {
		lines = append(lines, columns(item.Name, strconv.Itoa(item.Quantity), Money(item.LineTotal())))
	}
	lines = append(lines,
		rule,
		pair("Subtotal:", Money(o.Subtotal)),
		pair("Tax / GST:", Money(o.Tax)),
		pair("Total:", Money(o.Total)),
		rule,
		center("Thank you for your business!"),
		center("Please visit us again."),
	)
	return strings.Join(lines, "\n") + "\n"
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func pair(label, value string) string {
	gap := width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

// columns prints name, quantity and amount; long names are truncated.
func columns(name, qty, amount string) string {
	const nameWidth = width - 6 - 10
	if utf8.RuneCountInString(name) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "~"
	}
	return fmt.Sprintf("%-*s%6s%10s", nameWidth, name, qty, amount)
}
