package models

// Product is a sellable catalog item. Products are generated once at startup
// and never modified afterwards; Stock is informational only.
type Product struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Category string  `gorm:"size:100;index" json:"category"`
	Image    string  `gorm:"size:500" json:"image,omitempty"`
	Stock    int     `gorm:"not null" json:"stock"`
	Barcode  string  `gorm:"size:64;uniqueIndex" json:"barcode"`
}

// InStock reports whether at least one unit is on hand.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// StockValue is the price of all units on hand.
func (p *Product) StockValue() float64 {
	return p.Price * float64(p.Stock)
}

// CartItem is a product selected for the current sale.
// Quantity is always at least 1 while the item is in a cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (item *CartItem) LineTotal() float64 {
	return item.Price * float64(item.Quantity)
}
