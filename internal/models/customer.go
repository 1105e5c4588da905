package models

import "time"

// Customer is a loyalty profile that orders may reference by ID.
type Customer struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	// Points is the accumulated loyalty balance, never negative.
	Points int `gorm:"not null;default:0" json:"points"`
}

// Initial returns the first letter of the name, used as an avatar label.
func (c *Customer) Initial() string {
	for _, r := range c.Name {
		return string(r)
	}
	return ""
}
