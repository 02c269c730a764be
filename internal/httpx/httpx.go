// Package httpx holds the JSON request and response helpers shared by the
// HTTP handlers.
package httpx

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"bookledger/internal/fault"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeFields decodes a JSON object body into the raw field map the core
// operations consume.
func DecodeFields(r *http.Request) (map[string]any, error) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return nil, err
	}
	if in == nil {
		in = map[string]any{}
	}
	return in, nil
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Errors fault.List `json:"errors"`
}

// WriteError maps a core error to its transport shape: NOT_FOUND becomes
// 404, every other kind 400, and the full ordered error list is returned so
// a caller can display every failure.
func WriteError(w http.ResponseWriter, err error) {
	errs, ok := fault.As(err)
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	status := http.StatusBadRequest
	if errs.Has(fault.KindNotFound) {
		status = http.StatusNotFound
	}
	WriteJSON(w, status, errorBody{Errors: errs})
}
