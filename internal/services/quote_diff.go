package services

import (
	"math"

	"github.com/ekosolar/solar-quote/internal/models"
)

// itemDiff is the outcome of reconciling a submitted full-replacement item set
// against the items currently persisted for a quote.
type itemDiff struct {
	toAdd    []models.QuoteItem
	toUpdate []models.QuoteItem
	toRemove []models.QuoteItem
}

// kept returns the items that survive the diff (adds plus updates).
func (d itemDiff) kept() []models.QuoteItem {
	out := make([]models.QuoteItem, 0, len(d.toAdd)+len(d.toUpdate))
	out = append(out, d.toUpdate...)
	out = append(out, d.toAdd...)
	return out
}

// diffQuoteItems classifies every submitted item against the persisted set:
//   - id zero: add (never merged by content with an existing row)
//   - id matching a persisted row: update, totals recomputed from the submitted
//     quantity/price and the current exchange rate
//   - id unknown: treated as an add with a fresh identifier
//
// Persisted rows absent from the submitted set are removed. An empty submitted
// set therefore removes everything. Pure function, no store access.
func diffQuoteItems(persisted []models.QuoteItem, submitted []QuoteItemInput, quoteID uint, rate float64) itemDiff {
	byID := make(map[uint]models.QuoteItem, len(persisted))
	for _, it := range persisted {
		byID[it.ID] = it
	}

	var d itemDiff
	seen := make(map[uint]bool, len(submitted))
	for _, in := range submitted {
		usd, try := lineTotals(in.Quantity, in.UnitPriceUSD, rate)
		if in.ID != 0 {
			if cur, ok := byID[in.ID]; ok {
				seen[in.ID] = true
				cur.ProductID = in.ProductID
				cur.Quantity = in.Quantity
				cur.UnitPriceUSD = in.UnitPriceUSD
				cur.TotalUSD = usd
				cur.TotalTRY = try
				d.toUpdate = append(d.toUpdate, cur)
				continue
			}
		}
		d.toAdd = append(d.toAdd, models.QuoteItem{
			QuoteID:      quoteID,
			ProductID:    in.ProductID,
			Quantity:     in.Quantity,
			UnitPriceUSD: in.UnitPriceUSD,
			TotalUSD:     usd,
			TotalTRY:     try,
		})
	}
	for _, it := range persisted {
		if !seen[it.ID] {
			d.toRemove = append(d.toRemove, it)
		}
	}
	return d
}

// lineTotals computes the two-currency line amounts, rounded to kuruş/cent.
func lineTotals(quantity int, unitPriceUSD, rate float64) (usd, try float64) {
	usd = round2(float64(quantity) * unitPriceUSD)
	try = round2(usd * rate)
	return
}

func sumTotals(items []models.QuoteItem, rate float64) (usd, try float64) {
	for _, it := range items {
		usd += it.TotalUSD
	}
	usd = round2(usd)
	try = round2(usd * rate)
	return
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
