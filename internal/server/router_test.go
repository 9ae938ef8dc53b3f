package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/auth"
	"github.com/ekosolar/solar-quote/internal/db"
	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/rates"
)

func setupE2EDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:e2e_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

func sessionCookie(t *testing.T, uid uint) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	auth.CreateSession(rec, uid)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatalf("no session cookie")
	return nil
}

func doJSON(t *testing.T, app http.Handler, method, path string, body any, sess *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if sess != nil {
		req.AddCookie(sess)
	}
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	return rr
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := New(setupE2EDB(t), rates.Static(30))
	for _, path := range []string{"/quotes", "/categories", "/products", "/customers", "/rates/current"} {
		rr := doJSON(t, app, http.MethodGet, path, nil, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := New(setupE2EDB(t), rates.Static(30))
	for _, path := range []string{"/health", "/healthz"} {
		rr := doJSON(t, app, http.MethodGet, path, nil, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}
}

func TestQuoteFlowE2E(t *testing.T) {
	dbi := setupE2EDB(t)
	app := New(dbi, rates.Static(30))

	// signup establishes the session
	rr := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
		"email": "satis@ekosolar.test", "password": "parola123", "full_name": "Satış Kullanıcısı",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup: %d %s", rr.Code, rr.Body.String())
	}
	var user models.User
	if err := json.Unmarshal(rr.Body.Bytes(), &user); err != nil {
		t.Fatalf("signup body: %v", err)
	}
	if strings.Contains(rr.Body.String(), "parola123") {
		t.Fatalf("password leaked in response: %s", rr.Body.String())
	}
	sess := sessionCookie(t, user.ID)

	rr = doJSON(t, app, http.MethodPost, "/customers", map[string]string{"name": "Güneş Enerji AŞ", "city": "İzmir"}, sess)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create customer: %d %s", rr.Code, rr.Body.String())
	}
	var customer models.Customer
	_ = json.Unmarshal(rr.Body.Bytes(), &customer)

	rr = doJSON(t, app, http.MethodPost, "/products", map[string]any{"name": "Panel 450W", "price_usd": 95, "unit": "adet", "brand": "Jinko"}, sess)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create product: %d %s", rr.Code, rr.Body.String())
	}
	var product models.Product
	_ = json.Unmarshal(rr.Body.Bytes(), &product)

	// no exchange_rate in the request: the provider's rate (30) is applied
	rr = doJSON(t, app, http.MethodPost, "/quotes", map[string]any{
		"customer_id": customer.ID,
		"items": []map[string]any{
			{"product_id": product.ID, "quantity": 2, "unit_price_usd": 10},
		},
	}, sess)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create quote: %d %s", rr.Code, rr.Body.String())
	}
	var quote models.Quote
	if err := json.Unmarshal(rr.Body.Bytes(), &quote); err != nil {
		t.Fatalf("quote body: %v", err)
	}
	if quote.ExchangeRate != 30 || quote.TotalUSD != 20 || quote.TotalTRY != 600 {
		t.Fatalf("quote totals wrong: rate=%v usd=%v try=%v", quote.ExchangeRate, quote.TotalUSD, quote.TotalTRY)
	}
	if quote.UserID != user.ID {
		t.Fatalf("session user not attached to quote: %d", quote.UserID)
	}

	rr = doJSON(t, app, http.MethodGet, fmt.Sprintf("/quotes/get?id=%d", quote.ID), nil, sess)
	if rr.Code != http.StatusOK {
		t.Fatalf("get quote: %d %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Panel 450W") {
		t.Fatalf("product name not resolved: %s", rr.Body.String())
	}

	rr = doJSON(t, app, http.MethodGet, fmt.Sprintf("/quotes/pdf?id=%d", quote.ID), nil, sess)
	if rr.Code != http.StatusOK {
		t.Fatalf("quote pdf: %d %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("pdf content type: %s", ct)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("pdf body missing header")
	}
}

func TestCategoryDeleteFlowE2E(t *testing.T) {
	dbi := setupE2EDB(t)
	app := New(dbi, rates.Static(30))

	user := models.User{Email: "e2e@test", Password: "x", Active: true}
	if err := dbi.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	sess := sessionCookie(t, user.ID)

	rr := doJSON(t, app, http.MethodPost, "/categories", map[string]string{"name": "Paneller"}, sess)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create category: %d %s", rr.Code, rr.Body.String())
	}
	// every aggregate marshals snake_case on the wire
	if body := rr.Body.String(); !strings.Contains(body, `"name":"Paneller"`) || strings.Contains(body, `"Name"`) {
		t.Fatalf("category wire format not snake_case: %s", body)
	}
	var cat models.Category
	_ = json.Unmarshal(rr.Body.Bytes(), &cat)

	rr = doJSON(t, app, http.MethodPost, "/products", map[string]any{"name": "Panel", "price_usd": 90}, sess)
	if body := rr.Body.String(); !strings.Contains(body, `"price_usd"`) || strings.Contains(body, `"PriceUSD"`) {
		t.Fatalf("product wire format not snake_case: %s", body)
	}
	var product models.Product
	_ = json.Unmarshal(rr.Body.Bytes(), &product)

	rr = doJSON(t, app, http.MethodPost, "/products/categories", map[string]any{"product_id": product.ID, "category_id": cat.ID}, sess)
	if rr.Code != http.StatusOK {
		t.Fatalf("assign: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/categories?id=%d", cat.ID), nil, sess)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete category: %d %s", rr.Code, rr.Body.String())
	}

	// link migrated to the lazily created fallback category
	var fallback models.Category
	if err := dbi.Where("name = ?", models.DefaultCategoryName).First(&fallback).Error; err != nil {
		t.Fatalf("fallback not created: %v", err)
	}
	rr = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/categories?id=%d", fallback.ID), nil, sess)
	if rr.Code != http.StatusConflict {
		t.Fatalf("fallback delete should 409, got %d %s", rr.Code, rr.Body.String())
	}
}
