package models

import "time"

// Product catalog models
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `json:"description,omitempty"`
	PriceUSD    float64   `gorm:"not null" json:"price_usd"` // list price, USD
	Unit        string    `json:"unit"`                      // ex: adet, kW, m
	Brand       string    `gorm:"index" json:"brand"`
	Active      bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductCategory links a product to a category (many-to-many).
// The pair has no identity beyond (ProductID, CategoryID).
type ProductCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"not null;index:idx_product_category,unique,priority:1" json:"product_id"`
	CategoryID uint      `gorm:"not null;index:idx_product_category,unique,priority:2" json:"category_id"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
