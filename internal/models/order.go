package models

import (
	"strings"
	"time"
)

// PaymentMethod is the concrete channel a finalized order was paid with.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentGPay       PaymentMethod = "gpay"
	PaymentPhonePe    PaymentMethod = "phonepe"
	PaymentPaytm      PaymentMethod = "paytm"
	PaymentQRCode     PaymentMethod = "qr_code"
)

// OnlineMethods lists the submethods offered under "online" payment, in display order.
var OnlineMethods = []PaymentMethod{
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentGPay,
	PaymentPhonePe,
	PaymentPaytm,
	PaymentQRCode,
}

// IsOnline reports whether m is one of the online submethods.
func (m PaymentMethod) IsOnline() bool {
	for _, o := range OnlineMethods {
		if m == o {
			return true
		}
	}
	return false
}

// Valid reports whether m can be stored on an order.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m.IsOnline()
}

// Label returns the human readable name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentDebitCard:
		return "Debit Card"
	case PaymentGPay:
		return "Google Pay"
	case PaymentPhonePe:
		return "PhonePe"
	case PaymentPaytm:
		return "Paytm"
	case PaymentQRCode:
		return "QR Code"
	default:
		return "Online Payment"
	}
}

// Order is an immutable record of a completed sale.
// Seq preserves insertion order for the ledger; ID is the public identifier.
type Order struct {
	Seq uint `gorm:"primaryKey;autoIncrement" json:"-"`

	ID   string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	Date time.Time `gorm:"not null;index" json:"date"`

	// CustomerID is a weak reference; nil for walk-in sales.
	CustomerID *string `gorm:"size:36;index" json:"customer_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`

	Subtotal float64       `gorm:"not null" json:"subtotal"`
	Tax      float64       `gorm:"not null" json:"tax"`
	Total    float64       `gorm:"not null" json:"total"`
	Method   PaymentMethod `gorm:"size:20;not null" json:"method"`
}

// ItemsCount is the number of units sold, summed over all lines.
func (o *Order) ItemsCount() int {
	var n int
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// ShortID is the first 8 characters of the ID, upper-cased, as printed on receipts.
func (o *Order) ShortID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// BelongsTo reports whether the order references the given customer.
func (o *Order) BelongsTo(customerID string) bool {
	return o.CustomerID != nil && *o.CustomerID == customerID
}

// OrderItem is one line of an order, copied from the cart at completion.
type OrderItem struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	OrderID  string `gorm:"size:36;index;not null" json:"-"`
	Position int    `gorm:"not null;default:0" json:"-"`

	ProductID string  `gorm:"size:36;not null" json:"product_id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Category  string  `gorm:"size:100" json:"category,omitempty"`
	Barcode   string  `gorm:"size:64" json:"barcode,omitempty"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// LineTotal is price times quantity.
func (item *OrderItem) LineTotal() float64 {
	return item.Price * float64(item.Quantity)
}

// SnapshotItems copies cart lines into order lines. The result shares no
// memory with the cart.
func SnapshotItems(items []CartItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for i, it := range items {
		out = append(out, OrderItem{
			Position:  i,
			ProductID: it.ID,
			Name:      it.Name,
			Category:  it.Category,
			Barcode:   it.Barcode,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return out
}
