package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/result"
	"github.com/ekosolar/solar-quote/internal/validation"
)

// CategoryService guards the category lifecycle. The fallback category (exact
// name match on models.DefaultCategoryName) can never be edited or deleted;
// deleting any other category can migrate its product links to the fallback.
type CategoryService struct{ DB *gorm.DB }

func NewCategoryService(db *gorm.DB) *CategoryService { return &CategoryService{DB: db} }

type CategoryInput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func validateCategory(in CategoryInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 120, v)
	return v
}

func (s *CategoryService) Create(in CategoryInput) result.Result {
	if v := validateCategory(in); !v.Empty() {
		return result.Invalid(v)
	}
	var existing models.Category
	if err := s.DB.Where("name = ?", in.Name).First(&existing).Error; err == nil {
		return result.Invalid(map[string]string{"name": "already_exists"})
	}
	cat := models.Category{Name: in.Name, Description: in.Description, Active: true}
	if err := s.DB.Create(&cat).Error; err != nil {
		return result.Fail(fmt.Errorf("create category: %w", err))
	}
	return result.OK(cat)
}

func (s *CategoryService) Update(in CategoryInput) result.Result {
	if in.ID == 0 {
		return result.Invalid(map[string]string{"id": "required"})
	}
	var cat models.Category
	if err := s.DB.First(&cat, in.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("category_not_found")
		}
		return result.Fail(fmt.Errorf("load category: %w", err))
	}
	if cat.IsDefault() {
		return result.Blocked("default_category_protected")
	}
	if v := validateCategory(in); !v.Empty() {
		return result.Invalid(v)
	}
	var existing models.Category
	if err := s.DB.Where("name = ? AND id != ?", in.Name, in.ID).First(&existing).Error; err == nil {
		return result.Invalid(map[string]string{"name": "already_exists"})
	}
	cat.Name = in.Name
	cat.Description = in.Description
	if err := s.DB.Save(&cat).Error; err != nil {
		return result.Fail(fmt.Errorf("update category: %w", err))
	}
	return result.OK(cat)
}

// Remove deletes a category. With transferToDefault set, active product links are
// first re-created under the fallback category (created lazily when missing),
// skipping products that already carry a fallback link. The link migration, the
// link cleanup and the delete commit as one transaction.
func (s *CategoryService) Remove(id uint, transferToDefault bool) result.Result {
	var cat models.Category
	if err := s.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("category_not_found")
		}
		return result.Fail(fmt.Errorf("load category: %w", err))
	}
	if cat.IsDefault() {
		return result.Blocked("default_category_protected")
	}

	migrated := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var links []models.ProductCategory
		if err := tx.Where("category_id = ? AND active = ?", cat.ID, true).Find(&links).Error; err != nil {
			return err
		}
		if transferToDefault && len(links) > 0 {
			fallback, err := findOrCreateDefaultCategory(tx)
			if err != nil {
				return err
			}
			var fallbackLinks []models.ProductCategory
			if err := tx.Where("category_id = ?", fallback.ID).Find(&fallbackLinks).Error; err != nil {
				return err
			}
			linked := make(map[uint]bool, len(fallbackLinks))
			for _, l := range fallbackLinks {
				linked[l.ProductID] = true
			}
			for _, l := range links {
				if linked[l.ProductID] {
					continue
				}
				nl := models.ProductCategory{ProductID: l.ProductID, CategoryID: fallback.ID, Active: true}
				if err := tx.Create(&nl).Error; err != nil {
					return err
				}
				linked[l.ProductID] = true
				migrated = true
			}
		}
		if err := tx.Where("category_id = ?", cat.ID).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, cat.ID).Error
	})
	if err != nil {
		return result.Fail(fmt.Errorf("remove category: %w", err))
	}
	if migrated {
		return result.Done("category_removed_links_transferred")
	}
	return result.Done("category_removed")
}

func findOrCreateDefaultCategory(tx *gorm.DB) (models.Category, error) {
	var fallback models.Category
	err := tx.Where("name = ?", models.DefaultCategoryName).First(&fallback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fallback = models.Category{Name: models.DefaultCategoryName, Description: "Varsayılan kategori", Active: true}
		if err := tx.Create(&fallback).Error; err != nil {
			return fallback, err
		}
		return fallback, nil
	}
	return fallback, err
}

// CategoryWithCount pairs a category with its number of active product links.
type CategoryWithCount struct {
	models.Category
	ProductCount int `json:"product_count"`
}

// ListWithCounts bulk-fetches all links for the listed categories in a single
// query and groups them in memory, instead of counting per category.
func (s *CategoryService) ListWithCounts() result.Result {
	var categories []models.Category
	if err := s.DB.Where("active = ?", true).Order("name asc").Find(&categories).Error; err != nil {
		return result.Fail(fmt.Errorf("list categories: %w", err))
	}
	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	counts := map[uint]int{}
	if len(ids) > 0 {
		var links []models.ProductCategory
		if err := s.DB.Where("category_id IN ? AND active = ?", ids, true).Find(&links).Error; err != nil {
			return result.Fail(fmt.Errorf("load category links: %w", err))
		}
		for _, l := range links {
			counts[l.CategoryID]++
		}
	}
	out := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryWithCount{Category: c, ProductCount: counts[c.ID]})
	}
	return result.OK(out)
}
