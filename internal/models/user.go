package models

import "time"

// User & auth related models
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"unique;not null;index" json:"email"`
	Password  string `gorm:"not null" json:"-"` // bcrypt hash, never exposed
	FullName  string `gorm:"index" json:"full_name"`
	Active    bool   `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
