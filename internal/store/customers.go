package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// NewCustomer is the input for AddCustomer.
type NewCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Customers lists the directory by creation order.
func (s *Store) Customers(ctx context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var customers []models.Customer
	if err := s.ctxDB(ctx).Order("created_at ASC, id ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Customer fetches one customer by id.
func (s *Store) Customer(ctx context.Context, id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c models.Customer
	err := s.ctxDB(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// AddCustomer creates a customer with a fresh id and zero points.
// Input is expected to be validated by the caller.
func (s *Store) AddCustomer(ctx context.Context, in NewCustomer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Customer{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
	if err := s.ctxDB(ctx).Create(&c).Error; err != nil {
		return models.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	s.log.Info("customer added", zap.String("customer_id", c.ID))
	return c, nil
}
