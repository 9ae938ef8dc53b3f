package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/result"
	"github.com/ekosolar/solar-quote/internal/validation"
)

// QuoteService owns quote creation and the reconciliation of quote items.
// Every mutation that touches the header plus items runs in one transaction.
type QuoteService struct{ DB *gorm.DB }

func NewQuoteService(db *gorm.DB) *QuoteService { return &QuoteService{DB: db} }

type QuoteItemInput struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	Quantity     int     `json:"quantity"`
	UnitPriceUSD float64 `json:"unit_price_usd"`
}

// QuoteInput is the full desired state of a quote. On update the item list is a
// full replacement set; totals are never taken from the request.
type QuoteInput struct {
	ID           uint             `json:"id"`
	CustomerID   uint             `json:"customer_id"`
	UserID       uint             `json:"user_id"`
	QuoteDate    time.Time        `json:"quote_date"`
	ValidUntil   time.Time        `json:"valid_until"`
	ExchangeRate float64          `json:"exchange_rate"`
	Notes        string           `json:"notes"`
	Status       string           `json:"status"`
	Items        []QuoteItemInput `json:"items"`
}

func validQuoteStatus(s models.QuoteStatus) bool {
	switch s {
	case models.QuoteStatusDraft, models.QuoteStatusSent, models.QuoteStatusAccepted,
		models.QuoteStatusRejected, models.QuoteStatusExpired:
		return true
	}
	return false
}

func (s *QuoteService) validate(in QuoteInput) (validation.Violations, error) {
	v := validation.Violations{}
	validation.RequiredID("customer_id", in.CustomerID, v)
	validation.RequiredID("user_id", in.UserID, v)
	validation.PositiveFloat("exchange_rate", in.ExchangeRate, v)
	seen := make(map[uint]bool, len(in.Items))
	for i, it := range in.Items {
		validation.RequiredID(validation.ItemField("items", i, "product_id"), it.ProductID, v)
		validation.PositiveInt(validation.ItemField("items", i, "quantity"), it.Quantity, v)
		validation.PositiveFloat(validation.ItemField("items", i, "unit_price_usd"), it.UnitPriceUSD, v)
		// a persisted item id may appear at most once in the replacement set
		if it.ID != 0 {
			if seen[it.ID] {
				v[validation.ItemField("items", i, "id")] = "duplicate"
			}
			seen[it.ID] = true
		}
	}
	if !v.Empty() {
		return v, nil
	}
	// All item fields are well formed; check the product references in one query.
	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	if len(ids) > 0 {
		var products []models.Product
		if err := s.DB.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return nil, fmt.Errorf("check products: %w", err)
		}
		known := make(map[uint]bool, len(products))
		for _, p := range products {
			known[p.ID] = true
		}
		for i, it := range in.Items {
			if !known[it.ProductID] {
				v[validation.ItemField("items", i, "product_id")] = "unknown_product"
			}
		}
	}
	return v, nil
}

// Create validates the header and every line item, computes two-currency totals
// with the request's exchange rate and persists the aggregate in one transaction.
func (s *QuoteService) Create(in QuoteInput) result.Result {
	v, err := s.validate(in)
	if err != nil {
		return result.Fail(err)
	}
	if !v.Empty() {
		return result.Invalid(v)
	}
	status := models.QuoteStatus(in.Status)
	if in.Status == "" {
		status = models.QuoteStatusDraft
	} else if !validQuoteStatus(status) {
		return result.Invalid(map[string]string{"status": "unknown_status"})
	}
	quoteDate := in.QuoteDate
	if quoteDate.IsZero() {
		quoteDate = time.Now()
	}

	items := make([]models.QuoteItem, 0, len(in.Items))
	for _, it := range in.Items {
		usd, try := lineTotals(it.Quantity, it.UnitPriceUSD, in.ExchangeRate)
		items = append(items, models.QuoteItem{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPriceUSD: it.UnitPriceUSD,
			TotalUSD:     usd,
			TotalTRY:     try,
		})
	}
	totalUSD, totalTRY := sumTotals(items, in.ExchangeRate)
	quote := models.Quote{
		CustomerID:   in.CustomerID,
		UserID:       in.UserID,
		QuoteDate:    quoteDate,
		ValidUntil:   in.ValidUntil,
		ExchangeRate: in.ExchangeRate,
		Notes:        in.Notes,
		Status:       status,
		TotalUSD:     totalUSD,
		TotalTRY:     totalTRY,
		Active:       true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].QuoteID = quote.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return result.Fail(fmt.Errorf("create quote: %w", err))
	}
	quote.Items = items
	return result.OK(quote)
}

// Update reconciles the submitted full item set against the persisted one and
// commits adds, updates, removes and the new header totals atomically. Submitted
// totals are ignored; line amounts are always recomputed from quantity, price
// and the (possibly changed) exchange rate.
func (s *QuoteService) Update(in QuoteInput) result.Result {
	if in.ID == 0 {
		return result.Invalid(map[string]string{"id": "required"})
	}
	var quote models.Quote
	if err := s.DB.First(&quote, "id = ? AND active = ?", in.ID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("quote_not_found")
		}
		return result.Fail(fmt.Errorf("load quote: %w", err))
	}
	v, verr := s.validate(in)
	if verr != nil {
		return result.Fail(verr)
	}
	if !v.Empty() {
		return result.Invalid(v)
	}
	status := quote.Status
	if in.Status != "" {
		status = models.QuoteStatus(in.Status)
		if !validQuoteStatus(status) {
			return result.Invalid(map[string]string{"status": "unknown_status"})
		}
	}

	var persisted []models.QuoteItem
	if err := s.DB.Where("quote_id = ?", quote.ID).Order("id asc").Find(&persisted).Error; err != nil {
		return result.Fail(fmt.Errorf("load quote items: %w", err))
	}

	diff := diffQuoteItems(persisted, in.Items, quote.ID, in.ExchangeRate)
	kept := diff.kept()
	totalUSD, totalTRY := sumTotals(kept, in.ExchangeRate)

	quote.CustomerID = in.CustomerID
	quote.UserID = in.UserID
	if !in.QuoteDate.IsZero() {
		quote.QuoteDate = in.QuoteDate
	}
	quote.ValidUntil = in.ValidUntil
	quote.ExchangeRate = in.ExchangeRate
	quote.Notes = in.Notes
	quote.Status = status
	quote.TotalUSD = totalUSD
	quote.TotalTRY = totalTRY

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range diff.toUpdate {
			if err := tx.Save(&diff.toUpdate[i]).Error; err != nil {
				return err
			}
		}
		if len(diff.toAdd) > 0 {
			if err := tx.Create(&diff.toAdd).Error; err != nil {
				return err
			}
		}
		for _, it := range diff.toRemove {
			if err := tx.Delete(&models.QuoteItem{}, it.ID).Error; err != nil {
				return err
			}
		}
		return tx.Save(&quote).Error
	})
	if err != nil {
		return result.Fail(fmt.Errorf("update quote: %w", err))
	}
	quote.Items = diff.kept()
	return result.OK(quote)
}

// QuoteItemView is a quote line enriched with the product display name.
type QuoteItemView struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Unit         string  `json:"unit"`
	Quantity     int     `json:"quantity"`
	UnitPriceUSD float64 `json:"unit_price_usd"`
	TotalUSD     float64 `json:"total_usd"`
	TotalTRY     float64 `json:"total_try"`
}

type QuoteView struct {
	ID           uint               `json:"id"`
	CustomerID   uint               `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	UserID       uint               `json:"user_id"`
	UserName     string             `json:"user_name"`
	QuoteDate    time.Time          `json:"quote_date"`
	ValidUntil   time.Time          `json:"valid_until"`
	ExchangeRate float64            `json:"exchange_rate"`
	Notes        string             `json:"notes,omitempty"`
	Status       models.QuoteStatus `json:"status"`
	TotalUSD     float64            `json:"total_usd"`
	TotalTRY     float64            `json:"total_try"`
	Items        []QuoteItemView    `json:"items"`
}

// GetWithItems returns the quote with customer, user and product display names
// resolved. Inactive or missing quotes are reported as not found.
func (s *QuoteService) GetWithItems(id uint) result.Result {
	var quote models.Quote
	err := s.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("quote_items.id asc") }).
		First(&quote, "id = ? AND active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("quote_not_found")
		}
		return result.Fail(fmt.Errorf("load quote: %w", err))
	}

	var customer models.Customer
	if err := s.DB.First(&customer, quote.CustomerID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Fail(fmt.Errorf("load customer: %w", err))
	}
	var user models.User
	if err := s.DB.First(&user, quote.UserID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Fail(fmt.Errorf("load user: %w", err))
	}

	productIDs := make([]uint, 0, len(quote.Items))
	for _, it := range quote.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	prodByID := map[uint]models.Product{}
	if len(productIDs) > 0 {
		var products []models.Product
		if err := s.DB.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return result.Fail(fmt.Errorf("load products: %w", err))
		}
		for _, p := range products {
			prodByID[p.ID] = p
		}
	}

	view := QuoteView{
		ID:           quote.ID,
		CustomerID:   quote.CustomerID,
		CustomerName: customer.Name,
		UserID:       quote.UserID,
		UserName:     user.FullName,
		QuoteDate:    quote.QuoteDate,
		ValidUntil:   quote.ValidUntil,
		ExchangeRate: quote.ExchangeRate,
		Notes:        quote.Notes,
		Status:       quote.Status,
		TotalUSD:     quote.TotalUSD,
		TotalTRY:     quote.TotalTRY,
		Items:        make([]QuoteItemView, 0, len(quote.Items)),
	}
	for _, it := range quote.Items {
		p := prodByID[it.ProductID]
		view.Items = append(view.Items, QuoteItemView{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  p.Name,
			Unit:         p.Unit,
			Quantity:     it.Quantity,
			UnitPriceUSD: it.UnitPriceUSD,
			TotalUSD:     it.TotalUSD,
			TotalTRY:     it.TotalTRY,
		})
	}
	return result.OK(view)
}

// UpdateStatus replaces only the status column. Totals are neither revalidated
// nor recomputed.
func (s *QuoteService) UpdateStatus(id uint, status string) result.Result {
	st := models.QuoteStatus(status)
	if !validQuoteStatus(st) {
		return result.Invalid(map[string]string{"status": "unknown_status"})
	}
	var quote models.Quote
	if err := s.DB.First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("quote_not_found")
		}
		return result.Fail(fmt.Errorf("load quote: %w", err))
	}
	if err := s.DB.Model(&quote).Update("status", st).Error; err != nil {
		return result.Fail(fmt.Errorf("update status: %w", err))
	}
	quote.Status = st
	return result.OK(quote)
}

// RecalculateTotal repairs drift: it re-derives the quote totals from the
// persisted items and the stored exchange rate and writes them back.
func (s *QuoteService) RecalculateTotal(id uint) result.Result {
	var quote models.Quote
	if err := s.DB.First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("quote_not_found")
		}
		return result.Fail(fmt.Errorf("load quote: %w", err))
	}
	var items []models.QuoteItem
	if err := s.DB.Where("quote_id = ?", quote.ID).Find(&items).Error; err != nil {
		return result.Fail(fmt.Errorf("load quote items: %w", err))
	}
	totalUSD, totalTRY := sumTotals(items, quote.ExchangeRate)
	if err := s.DB.Model(&quote).Updates(map[string]any{"total_usd": totalUSD, "total_try": totalTRY}).Error; err != nil {
		return result.Fail(fmt.Errorf("save totals: %w", err))
	}
	quote.TotalUSD = totalUSD
	quote.TotalTRY = totalTRY
	return result.OK(quote)
}

// List returns active quotes, newest first.
func (s *QuoteService) List() result.Result {
	var quotes []models.Quote
	if err := s.DB.Where("active = ?", true).Order("id desc").Find(&quotes).Error; err != nil {
		return result.Fail(fmt.Errorf("list quotes: %w", err))
	}
	return result.OK(quotes)
}

// Delete deactivates a quote; its items are kept for the historical record.
func (s *QuoteService) Delete(id uint) result.Result {
	var quote models.Quote
	if err := s.DB.First(&quote, "id = ? AND active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("quote_not_found")
		}
		return result.Fail(fmt.Errorf("load quote: %w", err))
	}
	if err := s.DB.Model(&quote).Update("active", false).Error; err != nil {
		return result.Fail(fmt.Errorf("delete quote: %w", err))
	}
	return result.Done("quote_removed")
}
