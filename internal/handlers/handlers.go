// Package handlers exposes the JSON API. Handlers stay thin: decode, call the
// service, map the result onto the wire via httpx.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ekosolar/solar-quote/internal/httpx"
)

// idParam reads a positive ?id= query parameter, writing a 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}

// decodeJSON decodes the request body, writing a 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
