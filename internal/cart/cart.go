// Package cart holds the current sale as an immutable value. Every command
// returns a new Cart; the receiver is never modified, so a Cart can be shared
// between goroutines and swapped atomically by its owner.
package cart

import (
	"errors"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/services"
)

// ErrEmpty is returned by operations that need at least one line.
var ErrEmpty = errors.New("cart is empty")

// Cart is an ordered list of line items, at most one per product id.
type Cart struct {
	items []models.CartItem
}

// New builds a cart from existing lines. Lines with a quantity below 1 are
// clamped to 1 and duplicate product ids are merged.
func New(items ...models.CartItem) Cart {
	var c Cart
	for _, it := range items {
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		if i := c.index(it.ID); i >= 0 {
			c.items[i].Quantity += q
			continue
		}
		it.Quantity = q
		c.items = append(c.items, it)
	}
	return c
}

func (c Cart) index(productID string) int {
	for i := range c.items {
		if c.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add puts one unit of p in the cart, merging with an existing line.
// Stock is not checked.
func (c Cart) Add(p models.Product) Cart {
	items := c.clone()
	if i := c.index(p.ID); i >= 0 {
		items[i].Quantity++
		return Cart{items: items}
	}
	return Cart{items: append(items, models.CartItem{Product: p, Quantity: 1})}
}

// Remove drops the line for productID. Unknown ids are ignored.
func (c Cart) Remove(productID string) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	items := make([]models.CartItem, 0, len(c.items)-1)
	items = append(items, c.items[:i]...)
	items = append(items, c.items[i+1:]...)
	return Cart{items: items}
}

// UpdateQuantity sets the quantity of an existing line, clamped to at least 1.
// It never adds or removes lines.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	if quantity < 1 {
		quantity = 1
	}
	items := c.clone()
	items[i].Quantity = quantity
	return Cart{items: items}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Items returns a copy of the lines in insertion order.
func (c Cart) Items() []models.CartItem {
	return c.clone()
}

// Len is the number of distinct lines.
func (c Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c.items) == 0 }

// Quantity returns the quantity for productID, or 0 when absent.
func (c Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// Units is the total number of units across all lines.
func (c Cart) Units() int {
	var n int
	for i := range c.items {
		n += c.items[i].Quantity
	}
	return n
}

// Totals computes subtotal, tax and total at the given rate.
func (c Cart) Totals(taxRate float64) services.Totals {
	return services.ComputeTotals(c.items, taxRate)
}
