package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/ekosolar/solar-quote/internal/result"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// WriteResult maps a service result onto the wire. Successful results default to
// 200; pass http.StatusCreated as okStatus for create endpoints.
func WriteResult(w http.ResponseWriter, res result.Result) {
	WriteResultStatus(w, res, http.StatusOK)
}

func WriteResultStatus(w http.ResponseWriter, res result.Result, okStatus int) {
	switch res.Kind {
	case result.KindOK:
		if res.Data != nil {
			JSON(w, okStatus, res.Data)
			return
		}
		JSON(w, okStatus, map[string]string{"message": res.Message})
	case result.KindInvalid:
		JSONError(w, http.StatusBadRequest, res.Message, res.Fields)
	case result.KindNotFound:
		JSONError(w, http.StatusNotFound, res.Message, nil)
	case result.KindBlocked:
		JSONError(w, http.StatusConflict, res.Message, nil)
	default:
		JSONError(w, http.StatusInternalServerError, res.Message, nil)
	}
}
