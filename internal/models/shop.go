package models

import (
	"time"
)

// ShopDetailsID is the primary key of the single shop profile row.
const ShopDetailsID uint = 1

// ShopDetails is the business metadata printed on receipts.
type ShopDetails struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:500" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`
	// TaxID is the GST registration number.
	TaxID string `gorm:"size:50" json:"tax_id"`
}

// ShopDetailsPatch carries a partial update; nil fields are left unchanged.
type ShopDetailsPatch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
}

// Apply merges the patch into a copy of d.
func (p ShopDetailsPatch) Apply(d ShopDetails) ShopDetails {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.TaxID != nil {
		d.TaxID = *p.TaxID
	}
	return d
}

// Empty reports whether the patch changes nothing.
func (p ShopDetailsPatch) Empty() bool {
	return p.Name == nil && p.Address == nil && p.Phone == nil && p.Email == nil && p.TaxID == nil
}
