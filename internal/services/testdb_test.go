package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/db"
	"github.com/ekosolar/solar-quote/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// seedQuoteFixtures creates the minimal customer/user/product rows quote tests need.
func seedQuoteFixtures(t *testing.T, gdb *gorm.DB) (customer models.Customer, user models.User, products []models.Product) {
	t.Helper()
	customer = models.Customer{Name: "Güneş Enerji AŞ", City: "İzmir", Active: true}
	if err := gdb.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	user = models.User{Email: "satis@test", Password: "x", FullName: "Satış Kullanıcısı", Active: true}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	products = []models.Product{
		{Name: "Panel 450W", PriceUSD: 95, Unit: "adet", Brand: "Jinko", Active: true},
		{Name: "İnverter 5kW", PriceUSD: 680, Unit: "adet", Brand: "Growatt", Active: true},
		{Name: "Konstrüksiyon Seti", PriceUSD: 40, Unit: "set", Brand: "Solarix", Active: true},
	}
	for i := range products {
		if err := gdb.Create(&products[i]).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return
}

func seedCategory(t *testing.T, gdb *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name, Active: true}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return c
}

func linkProduct(t *testing.T, gdb *gorm.DB, productID, categoryID uint) models.ProductCategory {
	t.Helper()
	l := models.ProductCategory{ProductID: productID, CategoryID: categoryID, Active: true}
	if err := gdb.Create(&l).Error; err != nil {
		t.Fatalf("seed link %d->%d: %v", productID, categoryID, err)
	}
	return l
}

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
