package models

import "time"

// Customer entity
type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"` // company or person name
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `gorm:"index" json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	TaxOffice   string    `json:"tax_office,omitempty"`              // vergi dairesi
	TaxNumber   string    `gorm:"index" json:"tax_number,omitempty"` // vergi no
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
