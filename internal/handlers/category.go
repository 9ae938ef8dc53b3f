package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/httpx"
	"github.com/ekosolar/solar-quote/internal/services"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{Categories: services.NewCategoryService(db)}
}

func (h *CategoryHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.WriteResult(w, h.Categories.ListWithCounts())
	case http.MethodPost:
		var in services.CategoryInput
		if !decodeJSON(w, r, &in) {
			return
		}
		httpx.WriteResultStatus(w, h.Categories.Create(in), http.StatusCreated)
	case http.MethodPut:
		var in services.CategoryInput
		if !decodeJSON(w, r, &in) {
			return
		}
		httpx.WriteResult(w, h.Categories.Update(in))
	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		// links migrate to the fallback category unless transfer=false
		transfer := r.URL.Query().Get("transfer") != "false"
		httpx.WriteResult(w, h.Categories.Remove(id, transfer))
	default:
		methodNotAllowed(w, "GET,POST,PUT,DELETE")
	}
}
