package models

import "time"

// QuoteStatus represents the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// Quote is a customer-facing price proposal. List prices are kept in USD; the
// customer document is denominated in TRY using the exchange rate captured when
// the quote was written. Totals are persisted, not derived on read.
type Quote struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerID   uint        `gorm:"not null;index" json:"customer_id"`
	Customer     Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	UserID       uint        `gorm:"not null;index" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID" json:"-"`
	QuoteDate    time.Time   `gorm:"not null" json:"quote_date"`
	ValidUntil   time.Time   `json:"valid_until"`
	ExchangeRate float64     `gorm:"not null" json:"exchange_rate"` // USD->TRY snapshot
	Notes        string      `gorm:"type:text" json:"notes,omitempty"`
	Status       QuoteStatus `gorm:"size:20;default:'draft'" json:"status"`
	TotalUSD     float64     `gorm:"not null" json:"total_usd"`
	TotalTRY     float64     `gorm:"not null" json:"total_try"`
	Active       bool        `gorm:"not null;default:true" json:"active"`
	Items        []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// QuoteItem is one product line within a quote.
type QuoteItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuoteID      uint      `gorm:"not null;index" json:"quote_id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPriceUSD float64   `gorm:"not null" json:"unit_price_usd"`
	TotalUSD     float64   `gorm:"not null" json:"total_usd"`
	TotalTRY     float64   `gorm:"not null" json:"total_try"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LineTotalUSD is the invariant quantity x unit price; persisted TotalUSD must equal it.
func (it QuoteItem) LineTotalUSD() float64 {
	return float64(it.Quantity) * it.UnitPriceUSD
}
