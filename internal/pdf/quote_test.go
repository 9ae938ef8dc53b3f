package pdf

import "testing"

func TestQuotePDFProducesDocument(t *testing.T) {
	data := QuoteData{
		QuoteNumber:  "42",
		Date:         "2025-06-02",
		ValidUntil:   "2025-06-16",
		ExchangeRate: 32.25,
		Notes:        "Montaj dahil değildir.",
		PreparedBy:   "Satış Kullanıcısı",
		Customer: CustomerData{
			Name: "Güneş Enerji AŞ", City: "İzmir",
			TaxOffice: "Konak", TaxNumber: "1234567890",
		},
		Items: []QuoteItem{
			{ProductName: "Panel 450W", Unit: "adet", Quantity: 10, UnitPriceUSD: 95, TotalUSD: 950, TotalTRY: 30637.5},
			{ProductName: "İnverter 5kW", Unit: "adet", Quantity: 1, UnitPriceUSD: 680, TotalUSD: 680, TotalTRY: 21930},
		},
		TotalUSD: 1630,
		TotalTRY: 52567.5,
	}

	for _, lang := range []string{"tr", "en"} {
		out, err := QuotePDF(data, lang)
		if err != nil {
			t.Fatalf("%s: %v", lang, err)
		}
		if len(out) == 0 {
			t.Fatalf("%s: empty document", lang)
		}
		if string(out[:4]) != "%PDF" {
			t.Fatalf("%s: not a pdf header: %q", lang, out[:4])
		}
	}
}

func TestQuotePDFHandlesMinimalData(t *testing.T) {
	out, err := QuotePDF(QuoteData{QuoteNumber: "1", Customer: CustomerData{Name: "X"}}, "tr")
	if err != nil {
		t.Fatalf("minimal: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty document")
	}
}
