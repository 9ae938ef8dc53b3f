package models

import "time"

// ExchangeRate is a fetched daily USD/TRY snapshot kept for diagnostics and as a
// fallback when the upstream rate source is unreachable. Quotes store their own
// rate copy; rows here are never consulted after a quote is written.
type ExchangeRate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Currency  string    `gorm:"size:8;not null;index" json:"currency"` // "USD"
	Rate      float64   `gorm:"not null" json:"rate"`
	FetchedAt time.Time `gorm:"not null" json:"fetched_at"`
}
