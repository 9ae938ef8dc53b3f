package models

import "time"

// DefaultCategoryName is the reserved fallback category. Products displaced when a
// category is deleted are re-linked under it. It is located by exact name match and
// may never be renamed or deleted.
const DefaultCategoryName = "Genel"

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsDefault reports whether this is the protected fallback category.
func (c Category) IsDefault() bool { return c.Name == DefaultCategoryName }
