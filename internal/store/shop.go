package store

import (
	"context"
	"fmt"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// Shop returns the shop profile.
func (s *Store) Shop(ctx context.Context) (models.ShopDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var d models.ShopDetails
	if err := s.ctxDB(ctx).First(&d, models.ShopDetailsID).Error; err != nil {
		return models.ShopDetails{}, fmt.Errorf("get shop: %w", err)
	}
	return d, nil
}

// UpdateShop merges the non-nil fields of patch into the profile.
func (s *Store) UpdateShop(ctx context.Context, patch models.ShopDetailsPatch) (models.ShopDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d models.ShopDetails
	if err := s.ctxDB(ctx).First(&d, models.ShopDetailsID).Error; err != nil {
		return models.ShopDetails{}, fmt.Errorf("get shop: %w", err)
	}
	if patch.Empty() {
		return d, nil
	}
	d = patch.Apply(d)
	if err := s.ctxDB(ctx).Save(&d).Error; err != nil {
		return models.ShopDetails{}, fmt.Errorf("update shop: %w", err)
	}
	return d, nil
}
