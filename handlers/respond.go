package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hisab/backend/logging"
	"hisab/backend/services"
)

// envelope is the JSON body of every non-listing response.
type envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Message: message})
}

// writeError maps a service error to its status code. notFound is the message
// used for missing or foreign entities.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrCategoryInUse):
		writeMessage(w, http.StatusNotFound, "Category is in use and cannot be deleted")
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	default:
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			logging.NewFields().WithError(err).WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "").ToSlice()...)
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody decodes the JSON request body into v, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
