package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ekosolar/solar-quote/internal/httpx"
	"github.com/ekosolar/solar-quote/internal/services"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{Customers: services.NewCustomerService(db)}
}

func (h *CustomerHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.WriteResult(w, h.Customers.List(r.URL.Query().Get("q")))
	case http.MethodPost:
		var in services.CustomerInput
		if !decodeJSON(w, r, &in) {
			return
		}
		httpx.WriteResultStatus(w, h.Customers.Create(in), http.StatusCreated)
	case http.MethodPut:
		var in services.CustomerInput
		if !decodeJSON(w, r, &in) {
			return
		}
		httpx.WriteResult(w, h.Customers.Update(in))
	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		httpx.WriteResult(w, h.Customers.Delete(id))
	default:
		methodNotAllowed(w, "GET,POST,PUT,DELETE")
	}
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	httpx.WriteResult(w, h.Customers.Get(id))
}
