package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ekosolar/solar-quote/internal/httpx"
	"github.com/ekosolar/solar-quote/internal/rates"
)

type RateHandler struct {
	Rates rates.Provider
}

func NewRateHandler(provider rates.Provider) *RateHandler {
	return &RateHandler{Rates: provider}
}

func (h *RateHandler) Current(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	rate, err := h.Rates.CurrentUSDTRY(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "exchange_rate_unavailable", nil)
		return
	}
	writeRate(w, rate)
}

// Refresh forces an upstream fetch, skipping the cache. Providers without
// refresh support fall back to the cached read.
func (h *RateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var rate float64
	var err error
	if refresher, ok := h.Rates.(interface {
		Refresh(ctx context.Context) (float64, error)
	}); ok {
		rate, err = refresher.Refresh(r.Context())
	} else {
		rate, err = h.Rates.CurrentUSDTRY(r.Context())
	}
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "exchange_rate_unavailable", nil)
		return
	}
	writeRate(w, rate)
}

func writeRate(w http.ResponseWriter, rate float64) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"currency":   "USD",
		"rate":       rate,
		"fetched_at": time.Now().UTC(),
	})
}
