package handlers

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/auth"
	"github.com/ekosolar/solar-quote/internal/httpx"
	"github.com/ekosolar/solar-quote/internal/middleware"
	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/pdf"
	"github.com/ekosolar/solar-quote/internal/rates"
	"github.com/ekosolar/solar-quote/internal/services"
)

type QuoteHandler struct {
	Quotes *services.QuoteService
	Rates  rates.Provider
	DB     *gorm.DB
}

func NewQuoteHandler(db *gorm.DB, provider rates.Provider) *QuoteHandler {
	return &QuoteHandler{Quotes: services.NewQuoteService(db), Rates: provider, DB: db}
}

func (h *QuoteHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.WriteResult(w, h.Quotes.List())
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		httpx.WriteResult(w, h.Quotes.Delete(id))
	default:
		methodNotAllowed(w, "GET,POST,PUT,DELETE")
	}
}

// fillDefaults injects the session user and the current exchange rate when the
// request leaves them out. An explicit rate in the request always wins.
func (h *QuoteHandler) fillDefaults(r *http.Request, in *services.QuoteInput) bool {
	if in.UserID == 0 {
		if uid, ok := auth.UserIDFromContext(r.Context()); ok {
			in.UserID = uid
		}
	}
	if in.ExchangeRate == 0 && h.Rates != nil {
		rate, err := h.Rates.CurrentUSDTRY(r.Context())
		if err != nil {
			return false
		}
		in.ExchangeRate = rate
	}
	return true
}

func (h *QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var in services.QuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !h.fillDefaults(r, &in) {
		httpx.JSONError(w, http.StatusServiceUnavailable, "exchange_rate_unavailable", nil)
		return
	}
	httpx.WriteResultStatus(w, h.Quotes.Create(in), http.StatusCreated)
}

func (h *QuoteHandler) update(w http.ResponseWriter, r *http.Request) {
	var in services.QuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !h.fillDefaults(r, &in) {
		httpx.JSONError(w, http.StatusServiceUnavailable, "exchange_rate_unavailable", nil)
		return
	}
	httpx.WriteResult(w, h.Quotes.Update(in))
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	httpx.WriteResult(w, h.Quotes.GetWithItems(id))
}

func (h *QuoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var in struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	httpx.WriteResult(w, h.Quotes.UpdateStatus(in.ID, in.Status))
}

func (h *QuoteHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	httpx.WriteResult(w, h.Quotes.RecalculateTotal(id))
}

// PDF: GET /quotes/pdf?id=...
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	res := h.Quotes.GetWithItems(id)
	if !res.OK() {
		httpx.WriteResult(w, res)
		return
	}
	view := res.Data.(services.QuoteView)

	var customer models.Customer
	if err := h.DB.First(&customer, view.CustomerID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_customer", nil)
		return
	}

	data := pdf.QuoteData{
		QuoteNumber:  strconv.Itoa(int(view.ID)),
		Date:         view.QuoteDate.Format("2006-01-02"),
		ExchangeRate: view.ExchangeRate,
		Notes:        view.Notes,
		PreparedBy:   view.UserName,
		TotalUSD:     view.TotalUSD,
		TotalTRY:     view.TotalTRY,
		Customer: pdf.CustomerData{
			Name:        customer.Name,
			ContactName: customer.ContactName,
			Address:     customer.Address,
			City:        customer.City,
			TaxOffice:   customer.TaxOffice,
			TaxNumber:   customer.TaxNumber,
		},
	}
	if !view.ValidUntil.IsZero() {
		data.ValidUntil = view.ValidUntil.Format("2006-01-02")
	}
	for _, it := range view.Items {
		data.Items = append(data.Items, pdf.QuoteItem{
			ProductName:  it.ProductName,
			Unit:         it.Unit,
			Quantity:     it.Quantity,
			UnitPriceUSD: it.UnitPriceUSD,
			TotalUSD:     it.TotalUSD,
			TotalTRY:     it.TotalTRY,
		})
	}

	out, err := pdf.QuotePDF(data, middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"quote-"+strconv.Itoa(int(view.ID))+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
