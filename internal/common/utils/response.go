// internal/common/utils/response.go
// JSON response helpers shared by every handler

package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope every endpoint returns.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// RespondWithError sends an error response with the specified status code and message
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorBody{Error: message})
}

// RespondWithValidationError sends a 400 listing every failed field.
func RespondWithValidationError(w http.ResponseWriter, err error) {
	body := ErrorBody{Error: "Validation failed"}
	if verr, ok := err.(ValidationError); ok {
		body.Details = verr.Fields
	} else {
		body.Details = []string{err.Error()}
	}
	RespondWithJSON(w, http.StatusBadRequest, body)
}

// RespondWithJSON sends a JSON response with the specified status code and payload
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Error marshaling JSON"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
