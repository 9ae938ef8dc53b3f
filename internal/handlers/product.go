package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/httpx"
	"github.com/ekosolar/solar-quote/internal/services"
)

type ProductHandler struct {
	Products *services.ProductService
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{Products: services.NewProductService(db)}
}

func (h *ProductHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.WriteResult(w, h.Products.List(r.URL.Query().Get("q")))
	case http.MethodPost:
		var in services.ProductInput
		if !decodeJSON(w, r, &in) {
			return
		}
		httpx.WriteResultStatus(w, h.Products.Create(in), http.StatusCreated)
	case http.MethodPut:
		var in services.ProductInput
		if !decodeJSON(w, r, &in) {
			return
		}
		httpx.WriteResult(w, h.Products.Update(in))
	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		httpx.WriteResult(w, h.Products.Delete(id))
	default:
		methodNotAllowed(w, "GET,POST,PUT,DELETE")
	}
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	httpx.WriteResult(w, h.Products.Get(id))
}

// Categories manages product/category links: POST assigns, DELETE unassigns.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID  uint `json:"product_id"`
		CategoryID uint `json:"category_id"`
	}
	switch r.Method {
	case http.MethodPost, http.MethodDelete:
		if !decodeJSON(w, r, &in) {
			return
		}
	default:
		methodNotAllowed(w, "POST,DELETE")
		return
	}
	if in.ProductID == 0 || in.CategoryID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if r.Method == http.MethodPost {
		httpx.WriteResult(w, h.Products.AssignCategory(in.ProductID, in.CategoryID))
		return
	}
	httpx.WriteResult(w, h.Products.UnassignCategory(in.ProductID, in.CategoryID))
}
