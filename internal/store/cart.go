package store

import (
	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
)

// Cart returns the current cart value.
func (s *Store) Cart() cart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// AddToCart adds one unit of the catalog product with the given id.
func (s *Store) AddToCart(productID string) (cart.Cart, error) {
	p, err := s.Product(productID)
	if err != nil {
		return s.Cart(), err
	}
	return s.update(func(c cart.Cart) cart.Cart { return c.Add(p) }), nil
}

// RemoveFromCart drops a line; unknown ids are ignored.
func (s *Store) RemoveFromCart(productID string) cart.Cart {
	return s.update(func(c cart.Cart) cart.Cart { return c.Remove(productID) })
}

// UpdateQuantity sets a line's quantity, clamped to at least 1.
func (s *Store) UpdateQuantity(productID string, quantity int) cart.Cart {
	return s.update(func(c cart.Cart) cart.Cart { return c.UpdateQuantity(productID, quantity) })
}

// ClearCart empties the cart.
func (s *Store) ClearCart() cart.Cart {
	return s.update(cart.Cart.Clear)
}

func (s *Store) update(fn func(cart.Cart) cart.Cart) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = fn(s.cart)
	return s.cart
}
