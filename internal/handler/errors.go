package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"famfeed/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError translates a workflow error kind into an HTTP status.
func WriteServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch service.KindOf(err) {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindAlreadyUsed, service.KindConflict:
		status = http.StatusConflict
	case service.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case service.KindBadRequest:
		status = http.StatusBadRequest
	case service.KindForbidden:
		status = http.StatusForbidden
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		message = "internal server error"
	}

	WriteError(w, message, status)
}
