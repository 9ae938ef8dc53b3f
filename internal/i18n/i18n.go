// Package i18n holds the small tr/en catalog used for customer-facing strings
// (PDF labels, auth pages). API error codes stay untranslated on the wire.
package i18n

import "strings"

const defaultLang = "tr"

var catalog = map[string]map[string]string{
	"tr": {
		"required":                   "Zorunlu alan",
		"must_be_positive":           "Pozitif olmalı",
		"quote_title":                "FİYAT TEKLİFİ",
		"quote_number":               "Teklif No",
		"quote_date":                 "Tarih",
		"valid_until":                "Geçerlilik",
		"customer":                   "Müşteri",
		"product":                    "Ürün",
		"quantity":                   "Miktar",
		"unit_price_usd":             "Birim Fiyat (USD)",
		"line_total_usd":             "Tutar (USD)",
		"line_total_try":             "Tutar (TL)",
		"grand_total_usd":            "Genel Toplam (USD)",
		"grand_total_try":            "Genel Toplam (TL)",
		"exchange_rate":              "Kur (USD/TL)",
		"prepared_by":                "Hazırlayan",
		"notes":                      "Notlar",
		"default_category_protected": "Genel kategori değiştirilemez",
	},
	"en": {
		"required":                   "Required",
		"must_be_positive":           "Must be positive",
		"quote_title":                "PRICE QUOTE",
		"quote_number":               "Quote No",
		"quote_date":                 "Date",
		"valid_until":                "Valid until",
		"customer":                   "Customer",
		"product":                    "Product",
		"quantity":                   "Qty",
		"unit_price_usd":             "Unit Price (USD)",
		"line_total_usd":             "Total (USD)",
		"line_total_try":             "Total (TRY)",
		"grand_total_usd":            "Grand Total (USD)",
		"grand_total_try":            "Grand Total (TRY)",
		"exchange_rate":              "Rate (USD/TRY)",
		"prepared_by":                "Prepared by",
		"notes":                      "Notes",
		"default_category_protected": "The default category cannot be modified",
	},
}

// DetectLanguage picks tr or en from an Accept-Language header, defaulting to tr.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "tr") {
			return "tr"
		}
	}
	return defaultLang
}

// T translates a message code. Unknown languages fall back to Turkish; unknown
// codes fall back to the code itself so missing entries stay visible.
func T(lang, code string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[defaultLang][code]; ok {
		return s
	}
	return code
}
