// Package pdf renders quote documents. Layout intentionally mirrors the paper
// quotes the sales team sends: header block, item table with two-currency
// totals, rate line and notes.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ekosolar/solar-quote/internal/i18n"
)

type QuoteItem struct {
	ProductName  string
	Unit         string
	Quantity     int
	UnitPriceUSD float64
	TotalUSD     float64
	TotalTRY     float64
}

type CustomerData struct {
	Name        string
	ContactName string
	Address     string
	City        string
	TaxOffice   string
	TaxNumber   string
}

type QuoteData struct {
	QuoteNumber  string
	Date         string
	ValidUntil   string
	ExchangeRate float64
	Notes        string
	PreparedBy   string
	Customer     CustomerData
	Items        []QuoteItem
	TotalUSD     float64
	TotalTRY     float64
}

// QuotePDF renders the quote as a PDF document in the given language (tr/en).
func QuotePDF(data QuoteData, lang string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(12).
		WithRightMargin(12).
		WithTopMargin(12).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, i18n.T(lang, "quote_title"), props.Text{
		Size: 16, Style: fontstyle.Bold, Align: align.Center,
	}))

	m.AddRow(6,
		text.NewCol(6, i18n.T(lang, "quote_number")+": "+data.QuoteNumber, props.Text{Size: 9}),
		text.NewCol(6, i18n.T(lang, "quote_date")+": "+data.Date, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(6, i18n.T(lang, "exchange_rate")+": "+formatAmount(data.ExchangeRate), props.Text{Size: 9}),
		text.NewCol(6, i18n.T(lang, "valid_until")+": "+data.ValidUntil, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(8, text.NewCol(12, i18n.T(lang, "customer"), props.Text{Size: 10, Style: fontstyle.Bold, Top: 3}))
	m.AddRow(5, text.NewCol(12, data.Customer.Name, props.Text{Size: 9}))
	if data.Customer.ContactName != "" {
		m.AddRow(5, text.NewCol(12, data.Customer.ContactName, props.Text{Size: 9}))
	}
	if addr := customerAddress(data.Customer); addr != "" {
		m.AddRow(5, text.NewCol(12, addr, props.Text{Size: 9}))
	}
	if data.Customer.TaxNumber != "" {
		m.AddRow(5, text.NewCol(12, data.Customer.TaxOffice+" / "+data.Customer.TaxNumber, props.Text{Size: 9}))
	}

	m.AddRow(4, line.NewCol(12))

	headerStyle := props.Text{Size: 9, Style: fontstyle.Bold}
	m.AddRow(7,
		text.NewCol(4, i18n.T(lang, "product"), headerStyle),
		text.NewCol(2, i18n.T(lang, "quantity"), alignRight(headerStyle)),
		text.NewCol(2, i18n.T(lang, "unit_price_usd"), alignRight(headerStyle)),
		text.NewCol(2, i18n.T(lang, "line_total_usd"), alignRight(headerStyle)),
		text.NewCol(2, i18n.T(lang, "line_total_try"), alignRight(headerStyle)),
	)
	cell := props.Text{Size: 9}
	for _, it := range data.Items {
		qty := fmt.Sprintf("%d", it.Quantity)
		if it.Unit != "" {
			qty += " " + it.Unit
		}
		m.AddRow(6,
			text.NewCol(4, it.ProductName, cell),
			text.NewCol(2, qty, alignRight(cell)),
			text.NewCol(2, formatAmount(it.UnitPriceUSD), alignRight(cell)),
			text.NewCol(2, formatAmount(it.TotalUSD), alignRight(cell)),
			text.NewCol(2, formatAmount(it.TotalTRY), alignRight(cell)),
		)
	}

	m.AddRow(4, line.NewCol(12))
	totalStyle := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	m.AddRow(7, text.NewCol(12, i18n.T(lang, "grand_total_usd")+": "+formatAmount(data.TotalUSD), totalStyle))
	m.AddRow(7, text.NewCol(12, i18n.T(lang, "grand_total_try")+": "+formatAmount(data.TotalTRY), totalStyle))

	if data.Notes != "" {
		m.AddRow(8, text.NewCol(12, i18n.T(lang, "notes"), props.Text{Size: 9, Style: fontstyle.Bold, Top: 3}))
		m.AddRow(6, text.NewCol(12, data.Notes, props.Text{Size: 9}))
	}
	if data.PreparedBy != "" {
		m.AddRow(8, text.NewCol(12, i18n.T(lang, "prepared_by")+": "+data.PreparedBy, props.Text{Size: 9, Top: 3}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func alignRight(t props.Text) props.Text {
	t.Align = align.Right
	return t
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func customerAddress(c CustomerData) string {
	switch {
	case c.Address != "" && c.City != "":
		return c.Address + ", " + c.City
	case c.Address != "":
		return c.Address
	default:
		return c.City
	}
}
