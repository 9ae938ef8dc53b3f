package rates

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/models"
)

const sampleBulletin = `<?xml version="1.0" encoding="UTF-8"?>
<Tarih_Date Tarih="02.06.2025" Date="06/02/2025">
  <Currency CrossOrder="0" Kod="USD" CurrencyCode="USD">
    <Unit>1</Unit>
    <ForexBuying>32.1000</ForexBuying>
    <ForexSelling>32.2500</ForexSelling>
  </Currency>
  <Currency CrossOrder="1" Kod="EUR" CurrencyCode="EUR">
    <Unit>1</Unit>
    <ForexSelling>35.1200</ForexSelling>
  </Currency>
</Tarih_Date>`

func TestParseBulletin(t *testing.T) {
	rate, err := ParseBulletin([]byte(sampleBulletin))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rate != 32.25 {
		t.Fatalf("expected 32.25, got %v", rate)
	}
}

func TestParseBulletinCommaDecimal(t *testing.T) {
	xml := `<Tarih_Date><Currency Kod="USD"><ForexSelling>30,5000</ForexSelling></Currency></Tarih_Date>`
	rate, err := ParseBulletin([]byte(xml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rate != 30.5 {
		t.Fatalf("expected 30.5, got %v", rate)
	}
}

func TestParseBulletinMissingUSD(t *testing.T) {
	xml := `<Tarih_Date><Currency Kod="EUR"><ForexSelling>35.12</ForexSelling></Currency></Tarih_Date>`
	if _, err := ParseBulletin([]byte(xml)); err == nil {
		t.Fatal("expected error for missing USD")
	}
}

func TestHTTPProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleBulletin)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	rate, err := p.CurrentUSDTRY(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rate != 32.25 {
		t.Fatalf("expected 32.25, got %v", rate)
	}
}

type countingProvider struct {
	rate  float64
	err   error
	calls int
}

func (c *countingProvider) CurrentUSDTRY(context.Context) (float64, error) {
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	return c.rate, nil
}

func newRateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.ExchangeRate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestCachedProviderCachesWithinTTL(t *testing.T) {
	up := &countingProvider{rate: 30}
	gdb := newRateTestDB(t)
	c := NewCachedProvider(up, gdb, time.Hour)

	for i := 0; i < 3; i++ {
		rate, err := c.CurrentUSDTRY(context.Background())
		if err != nil || rate != 30 {
			t.Fatalf("call %d: rate=%v err=%v", i, rate, err)
		}
	}
	if up.calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", up.calls)
	}
	var snapshots int64
	gdb.Model(&models.ExchangeRate{}).Count(&snapshots)
	if snapshots != 1 {
		t.Fatalf("expected one snapshot, got %d", snapshots)
	}
}

func TestCachedProviderFallsBackToSnapshot(t *testing.T) {
	gdb := newRateTestDB(t)
	gdb.Create(&models.ExchangeRate{Currency: "USD", Rate: 29.5, FetchedAt: time.Now().Add(-2 * time.Hour)})

	up := &countingProvider{err: errors.New("upstream down")}
	c := NewCachedProvider(up, gdb, time.Hour)

	rate, err := c.CurrentUSDTRY(context.Background())
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if rate != 29.5 {
		t.Fatalf("expected snapshot rate 29.5, got %v", rate)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	up := &countingProvider{rate: 30}
	c := NewCachedProvider(up, newRateTestDB(t), time.Hour)

	if _, err := c.CurrentUSDTRY(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	up.rate = 31
	rate, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rate != 31 {
		t.Fatalf("refresh should fetch upstream, got %v", rate)
	}
	// subsequent cached reads see the refreshed value
	got, err := c.CurrentUSDTRY(context.Background())
	if err != nil || got != 31 {
		t.Fatalf("cache not updated: rate=%v err=%v", got, err)
	}
	if up.calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", up.calls)
	}
}

func TestCachedProviderUnavailable(t *testing.T) {
	up := &countingProvider{err: errors.New("upstream down")}
	c := NewCachedProvider(up, newRateTestDB(t), time.Hour)

	_, err := c.CurrentUSDTRY(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
