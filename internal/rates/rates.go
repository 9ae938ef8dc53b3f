// Package rates resolves the daily USD/TRY selling rate. The upstream source
// is the central bank daily XML bulletin; results are cached in memory and
// snapshotted into the database so quote creation keeps working when the
// bulletin host is briefly unreachable.
package rates

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/models"
)

// Provider yields the current USD/TRY rate.
type Provider interface {
	CurrentUSDTRY(ctx context.Context) (float64, error)
}

var ErrUnavailable = errors.New("exchange rate unavailable")

// tcmbBulletin mirrors the fields we need from the daily kurlar XML.
type tcmbBulletin struct {
	XMLName    xml.Name `xml:"Tarih_Date"`
	Currencies []struct {
		Code         string `xml:"Kod,attr"`
		ForexSelling string `xml:"ForexSelling"`
	} `xml:"Currency"`
}

// HTTPProvider fetches the bulletin over HTTP.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

func NewHTTPProvider(url string) *HTTPProvider {
	return &HTTPProvider{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (p *HTTPProvider) CurrentUSDTRY(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rate bulletin: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate bulletin status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read rate bulletin: %w", err)
	}
	return ParseBulletin(body)
}

// ParseBulletin extracts the USD forex selling rate from bulletin XML.
func ParseBulletin(data []byte) (float64, error) {
	var b tcmbBulletin
	if err := xml.Unmarshal(data, &b); err != nil {
		return 0, fmt.Errorf("parse rate bulletin: %w", err)
	}
	for _, c := range b.Currencies {
		if c.Code != "USD" {
			continue
		}
		raw := strings.TrimSpace(c.ForexSelling)
		// some bulletins use comma decimals
		raw = strings.ReplaceAll(raw, ",", ".")
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("parse USD rate %q: %w", c.ForexSelling, err)
		}
		if rate <= 0 {
			return 0, fmt.Errorf("non-positive USD rate %v", rate)
		}
		return rate, nil
	}
	return 0, errors.New("USD not present in rate bulletin")
}

// CachedProvider wraps an upstream provider with an in-memory TTL cache and a
// database snapshot fallback. Concurrent callers share one cached value.
type CachedProvider struct {
	upstream Provider
	db       *gorm.DB
	ttl      time.Duration

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

func NewCachedProvider(upstream Provider, db *gorm.DB, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedProvider{upstream: upstream, db: db, ttl: ttl}
}

func (c *CachedProvider) CurrentUSDTRY(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rate > 0 && time.Since(c.fetchedAt) < c.ttl {
		return c.rate, nil
	}

	rate, err := c.upstream.CurrentUSDTRY(ctx)
	if err == nil {
		c.rate = rate
		c.fetchedAt = time.Now()
		c.snapshot(rate)
		return rate, nil
	}
	log.Printf("rate fetch failed, falling back to last snapshot: %v", err)

	if snap, ok := c.lastSnapshot(); ok {
		c.rate = snap.Rate
		c.fetchedAt = time.Now()
		return snap.Rate, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Refresh bypasses the cache, forces an upstream fetch and stores the result.
func (c *CachedProvider) Refresh(ctx context.Context) (float64, error) {
	rate, err := c.upstream.CurrentUSDTRY(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.mu.Lock()
	c.rate = rate
	c.fetchedAt = time.Now()
	c.snapshot(rate)
	c.mu.Unlock()
	return rate, nil
}

func (c *CachedProvider) snapshot(rate float64) {
	if c.db == nil {
		return
	}
	rec := models.ExchangeRate{Currency: "USD", Rate: rate, FetchedAt: time.Now()}
	if err := c.db.Create(&rec).Error; err != nil {
		log.Printf("store rate snapshot: %v", err)
	}
}

func (c *CachedProvider) lastSnapshot() (models.ExchangeRate, bool) {
	if c.db == nil {
		return models.ExchangeRate{}, false
	}
	var rec models.ExchangeRate
	err := c.db.Where("currency = ?", "USD").Order("fetched_at desc").First(&rec).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("load rate snapshot: %v", err)
		}
		return models.ExchangeRate{}, false
	}
	return rec, true
}

// Static returns a provider with a fixed rate, for tests and offline use.
func Static(rate float64) Provider { return staticProvider(rate) }

type staticProvider float64

func (s staticProvider) CurrentUSDTRY(context.Context) (float64, error) {
	return float64(s), nil
}
