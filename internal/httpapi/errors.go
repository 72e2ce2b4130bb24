package httpapi

import (
	"encoding/json"
	"net/http"

	"completiond/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
// The profile store's unknown-id error implements it with a 404.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeStoreError maps a profile store error to a response. Errors that
// carry a status use it; anything else is a client mistake.
func writeStoreError(w http.ResponseWriter, err error) {
	if he, ok := err.(HTTPError); ok {
		writeJSONError(w, he.StatusCode(), he.Error())
		return
	}
	writeJSONError(w, http.StatusBadRequest, err.Error())
}
