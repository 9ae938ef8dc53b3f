package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ekosolar/solar-quote/internal/models"
)

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Print masked DSN once for diagnostics (before migrations for visibility)
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise AutoMigrate (dev convenience)
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range AllModels() {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"users", "categories", "products", "quotes", "quote_items"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		Seed(db)
	}
	return db, nil
}

// AllModels lists every persisted aggregate in dependency order.
func AllModels() []any {
	return []any{
		&models.User{}, &models.Customer{}, &models.Category{}, &models.Product{},
		&models.ProductCategory{}, &models.Quote{}, &models.QuoteItem{}, &models.ExchangeRate{},
	}
}

// Seed inserts the fallback category and a couple of demo catalog rows. Every
// insert is guarded by a lookup so seeding stays idempotent.
func Seed(db *gorm.DB) {
	var existing models.Category
	if err := db.Where("name = ?", models.DefaultCategoryName).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		db.Create(&models.Category{Name: models.DefaultCategoryName, Description: "Varsayılan kategori", Active: true})
	}
	demo := []models.Product{
		{Name: "Monokristal Panel 450W", PriceUSD: 95, Unit: "adet", Brand: "Jinko", Active: true},
		{Name: "Hibrit İnverter 5kW", PriceUSD: 680, Unit: "adet", Brand: "Growatt", Active: true},
	}
	for _, p := range demo {
		var found models.Product
		if err := db.Where("name = ?", p.Name).First(&found).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&p)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
