package issue

import (
	"encoding/json"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

type serverErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// WriteServerError reports a storage or internal fault: a generic message
// for the client plus the underlying error text for diagnostics.
func WriteServerError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, serverErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
