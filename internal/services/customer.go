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

type CustomerService struct{ DB *gorm.DB }

func NewCustomerService(db *gorm.DB) *CustomerService { return &CustomerService{DB: db} }

type CustomerInput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	TaxOffice   string `json:"tax_office"`
	TaxNumber   string `json:"tax_number"`
}

func validateCustomer(in CustomerInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	return v
}

func applyCustomerInput(c *models.Customer, in CustomerInput) {
	c.Name = in.Name
	c.ContactName = in.ContactName
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.TaxOffice = in.TaxOffice
	c.TaxNumber = in.TaxNumber
}

func (s *CustomerService) Create(in CustomerInput) result.Result {
	if v := validateCustomer(in); !v.Empty() {
		return result.Invalid(v)
	}
	c := models.Customer{Active: true}
	applyCustomerInput(&c, in)
	if err := s.DB.Create(&c).Error; err != nil {
		return result.Fail(fmt.Errorf("create customer: %w", err))
	}
	return result.OK(c)
}

func (s *CustomerService) Update(in CustomerInput) result.Result {
	if in.ID == 0 {
		return result.Invalid(map[string]string{"id": "required"})
	}
	var c models.Customer
	if err := s.DB.First(&c, "id = ? AND active = ?", in.ID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("customer_not_found")
		}
		return result.Fail(fmt.Errorf("load customer: %w", err))
	}
	if v := validateCustomer(in); !v.Empty() {
		return result.Invalid(v)
	}
	applyCustomerInput(&c, in)
	if err := s.DB.Save(&c).Error; err != nil {
		return result.Fail(fmt.Errorf("update customer: %w", err))
	}
	return result.OK(c)
}

func (s *CustomerService) Delete(id uint) result.Result {
	var c models.Customer
	if err := s.DB.First(&c, "id = ? AND active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("customer_not_found")
		}
		return result.Fail(fmt.Errorf("load customer: %w", err))
	}
	if err := s.DB.Model(&c).Update("active", false).Error; err != nil {
		return result.Fail(fmt.Errorf("delete customer: %w", err))
	}
	return result.Done("customer_removed")
}

func (s *CustomerService) Get(id uint) result.Result {
	var c models.Customer
	if err := s.DB.First(&c, "id = ? AND active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound("customer_not_found")
		}
		return result.Fail(fmt.Errorf("load customer: %w", err))
	}
	return result.OK(c)
}

func (s *CustomerService) List(query string) result.Result {
	dbq := s.DB.Where("active = ?", true)
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(contact_name) LIKE ?", like, like)
	}
	var customers []models.Customer
	if err := dbq.Order("name asc").Find(&customers).Error; err != nil {
		return result.Fail(fmt.Errorf("list customers: %w", err))
	}
	return result.OK(customers)
}
