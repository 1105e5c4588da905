// Package store is the application state of the terminal: the catalog, the
// live cart, the active role and, through gorm, the order ledger, the customer
// directory and the shop profile.
//
// All mutations are serialized by one RWMutex. Completing a checkout inserts
// the order and clears the cart under the write lock, so readers never observe
// one without the other.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/catalog"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidMethod    = errors.New("invalid payment method")
)

// Options configures a Store. Zero values fall back to defaults.
type Options struct {
	TaxRate     float64
	DefaultRole gate.Role
	Logger      *zap.Logger
	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string
}

// Store owns every piece of mutable state.
type Store struct {
	mu sync.RWMutex
	db *gorm.DB

	products []models.Product
	byID     map[string]int

	cart    cart.Cart
	role    gate.Role
	taxRate float64

	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// New loads the catalog from db and returns a store with an empty cart.
func New(db *gorm.DB, opts Options) (*Store, error) {
	var products []models.Product
	if err := db.Order("CAST(id AS INTEGER) ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	s := &Store{
		db:       db,
		products: products,
		byID:     make(map[string]int, len(products)),
		role:     opts.DefaultRole,
		taxRate:  opts.TaxRate,
		log:      opts.Logger,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	for i, p := range products {
		s.byID[p.ID] = i
	}
	if !s.role.Valid() {
		s.role = gate.RoleAdmin
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

// TaxRate is the fraction applied to subtotals. It is fixed at startup.
func (s *Store) TaxRate() float64 {
	return s.taxRate
}

// Products returns the whole catalog in id order.
func (s *Store) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// SearchProducts filters the catalog by name or category.
func (s *Store) SearchProducts(q string) []models.Product {
	return catalog.Search(s.products, q)
}

// Product looks a catalog item up by id.
func (s *Store) Product(id string) (models.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return s.products[i], nil
}

// Role returns the active operator role.
func (s *Store) Role() gate.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetRole switches the operator role.
func (s *Store) SetRole(r gate.Role) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %q", gate.ErrUnknownRole, r)
	}
	s.mu.Lock()
	prev := s.role
	s.role = r
	s.mu.Unlock()
	if prev != r {
		s.log.Info("role changed", zap.String("from", string(prev)), zap.String("to", string(r)))
	}
	return nil
}

func (s *Store) ctxDB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.db.WithContext(ctx)
}
