package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/auth"
	"github.com/ekosolar/solar-quote/internal/handlers"
	"github.com/ekosolar/solar-quote/internal/httpx"
	"github.com/ekosolar/solar-quote/internal/middleware"
	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/rates"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, provider rates.Provider) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth checks that the session's user still exists and is active.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ? AND active = ?", uid, true).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// lightweight DB check; details stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handlers.NewAuthHandler(db).Register(mux)

	protect := func(fn http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(fn))
	}

	qh := handlers.NewQuoteHandler(db, provider)
	mux.Handle("/quotes", protect(qh.Collection))
	mux.Handle("/quotes/get", protect(qh.Get))
	mux.Handle("/quotes/status", protect(qh.Status))
	mux.Handle("/quotes/recalculate", protect(qh.Recalculate))
	mux.Handle("/quotes/pdf", protect(qh.PDF))

	ch := handlers.NewCategoryHandler(db)
	mux.Handle("/categories", protect(ch.Collection))

	ph := handlers.NewProductHandler(db)
	mux.Handle("/products", protect(ph.Collection))
	mux.Handle("/products/get", protect(ph.Get))
	mux.Handle("/products/categories", protect(ph.Categories))

	cuh := handlers.NewCustomerHandler(db)
	mux.Handle("/customers", protect(cuh.Collection))
	mux.Handle("/customers/get", protect(cuh.Get))

	rh := handlers.NewRateHandler(provider)
	mux.Handle("/rates/current", protect(rh.Current))
	mux.Handle("/rates/refresh", protect(rh.Refresh))

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
