package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekosolar/solar-quote/internal/rates"
)

type refreshableProvider struct {
	current   float64
	refreshed float64
}

func (p *refreshableProvider) CurrentUSDTRY(context.Context) (float64, error) {
	return p.current, nil
}

func (p *refreshableProvider) Refresh(context.Context) (float64, error) {
	return p.refreshed, nil
}

func TestRateCurrent(t *testing.T) {
	h := NewRateHandler(rates.Static(32.25))
	rr := httptest.NewRecorder()
	h.Current(rr, httptest.NewRequest(http.MethodGet, "/rates/current", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Currency != "USD" || body.Rate != 32.25 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRateRefreshUsesRefresher(t *testing.T) {
	h := NewRateHandler(&refreshableProvider{current: 30, refreshed: 31})
	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/rates/refresh", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Rate float64 `json:"rate"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body.Rate != 31 {
		t.Fatalf("expected refreshed rate 31, got %v", body.Rate)
	}
}

func TestRateRefreshFallsBackWithoutRefresher(t *testing.T) {
	h := NewRateHandler(rates.Static(30))
	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/rates/refresh", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Rate float64 `json:"rate"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body.Rate != 30 {
		t.Fatalf("expected 30, got %v", body.Rate)
	}
}

func TestRateRefreshMethodGuard(t *testing.T) {
	h := NewRateHandler(rates.Static(30))
	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodGet, "/rates/refresh", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}
