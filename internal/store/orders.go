package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/services"
)

// CompleteCheckout turns the live cart into an order, records it in the
// ledger and clears the cart as one unit. customerID may be nil for a walk-in
// sale; it is not checked against the directory.
func (s *Store) CompleteCheckout(ctx context.Context, customerID *string, method models.PaymentMethod) (models.Order, error) {
	if !method.Valid() {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return models.Order{}, cart.ErrEmpty
	}

	items := models.SnapshotItems(s.cart.Items())
	totals := services.ComputeOrderTotals(items, s.taxRate)
	order := models.Order{
		ID:       s.newID(),
		Date:     s.now(),
		Items:    items,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
		Method:   method,
	}
	if customerID != nil && *customerID != "" {
		id := *customerID
		order.CustomerID = &id
	}

	err := s.ctxDB(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("record order: %w", err)
	}
	s.cart = s.cart.Clear()

	s.log.Info("order recorded",
		zap.String("order_id", order.ID),
		zap.String("method", string(order.Method)),
		zap.Int("items", order.ItemsCount()),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// Orders lists the ledger most recent first, by insertion order.
func (s *Store) Orders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []models.Order
	err := s.ctxDB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("seq DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Order fetches one order by id.
func (s *Store) Order(ctx context.Context, id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var order models.Order
	err := s.ctxDB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}
