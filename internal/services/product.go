package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/result"
	"github.com/ekosolar/solar-quote/internal/validation"
)

type ProductService struct{ DB *gorm.DB }

func NewProductService(db *gorm.DB) *ProductService { return &ProductService{DB: db} }

type ProductInput struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceUSD    float64 `json:"price_usd"`
	Unit        string  `json:"unit"`
	Brand       string  `json:"brand"`
}

func validateProduct(in ProductInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	validation.PositiveFloat("price_usd", in.PriceUSD, v)
	return v
}

func (s *ProductService) Create(in ProductInput) result.Result {
	if v := validateProduct(in); !v.Empty() {
		return result.Invalid(v)
	}
	p := models.Product{
		Name: in.Name, Description: in.Description, PriceUSD: in.PriceUSD,
		Unit: in.Unit, Brand: in.Brand, Active: true,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return result.Fail(fmt.Errorf("create product: %w", err))
	}
	return result.OK(p)
}

func (s *ProductService) Update(in ProductInput) result.Result {
	if in.ID == 0 {
		return result.Invalid(map[string]string{"id": "required"})
	}
	var p models.Product
	if err := s.DB.First(&p, "id = ? AND active = ?", in.ID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("product_not_found")
		}
		return result.Fail(fmt.Errorf("load product: %w", err))
	}
	if v := validateProduct(in); !v.Empty() {
		return result.Invalid(v)
	}
	p.Name = in.Name
	p.Description = in.Description
	p.PriceUSD = in.PriceUSD
	p.Unit = in.Unit
	p.Brand = in.Brand
	if err := s.DB.Save(&p).Error; err != nil {
		return result.Fail(fmt.Errorf("update product: %w", err))
	}
	return result.OK(p)
}

// Delete deactivates a product and its category links; quote lines that
// reference it keep their snapshot prices.
func (s *ProductService) Delete(id uint) result.Result {
	var p models.Product
	if err := s.DB.First(&p, "id = ? AND active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("product_not_found")
		}
		return result.Fail(fmt.Errorf("load product: %w", err))
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductCategory{}).Where("product_id = ?", p.ID).Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&p).Update("active", false).Error
	})
	if err != nil {
		return result.Fail(fmt.Errorf("delete product: %w", err))
	}
	return result.Done("product_removed")
}

func (s *ProductService) Get(id uint) result.Result {
	var p models.Product
	if err := s.DB.First(&p, "id = ? AND active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("product_not_found")
		}
		return result.Fail(fmt.Errorf("load product: %w", err))
	}
	return result.OK(p)
}

// List returns active products, optionally filtered by a name/brand substring.
func (s *ProductService) List(query string) result.Result {
	dbq := s.DB.Where("active = ?", true)
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(brand) LIKE ?", like, like)
	}
	var products []models.Product
	if err := dbq.Order("name asc").Find(&products).Error; err != nil {
		return result.Fail(fmt.Errorf("list products: %w", err))
	}
	return result.OK(products)
}

// AssignCategory links a product to a category, reactivating a previously
// removed link instead of violating the pair uniqueness.
func (s *ProductService) AssignCategory(productID, categoryID uint) result.Result {
	var p models.Product
	if err := s.DB.First(&p, "id = ? AND active = ?", productID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("product_not_found")
		}
		return result.Fail(fmt.Errorf("load product: %w", err))
	}
	var cat models.Category
	if err := s.DB.First(&cat, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("category_not_found")
		}
		return result.Fail(fmt.Errorf("load category: %w", err))
	}
	var link models.ProductCategory
	err := s.DB.Where("product_id = ? AND category_id = ?", productID, categoryID).First(&link).Error
	if err == nil {
		if link.Active {
			return result.OK(link)
		}
		if err := s.DB.Model(&link).Update("active", true).Error; err != nil {
			return result.Fail(fmt.Errorf("reactivate link: %w", err))
		}
		link.Active = true
		return result.OK(link)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Fail(fmt.Errorf("load link: %w", err))
	}
	link = models.ProductCategory{ProductID: productID, CategoryID: categoryID, Active: true}
	if err := s.DB.Create(&link).Error; err != nil {
		return result.Fail(fmt.Errorf("create link: %w", err))
	}
	return result.OK(link)
}

func (s *ProductService) UnassignCategory(productID, categoryID uint) result.Result {
	var link models.ProductCategory
	err := s.DB.Where("product_id = ? AND category_id = ? AND active = ?", productID, categoryID, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("link_not_found")
		}
		return result.Fail(fmt.Errorf("load link: %w", err))
	}
	if err := s.DB.Model(&link).Update("active", false).Error; err != nil {
		return result.Fail(fmt.Errorf("deactivate link: %w", err))
	}
	return result.Done("link_removed")
}
