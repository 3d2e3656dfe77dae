package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ponder/internal/models"
	"ponder/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		RequestID: r.Header.Get("X-Request-ID"),
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		cfgErr   *services.ConfigurationError
		badReq   *services.BadRequestError
		upstream *services.UpstreamError
	)
	switch {
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusInternalServerError, errorResp(cfgErr.Message, r))
	case errors.As(err, &badReq):
		writeJSON(w, http.StatusBadRequest, errorResp(badReq.Message, r))
	case errors.As(err, &upstream):
		writeJSON(w, upstreamStatus(upstream.StatusCode), errorResp(upstream.Message, r))
	default:
		log.Printf("Server error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Internal server error occurred", r))
	}
}

// upstreamStatus guards WriteHeader against codes net/http refuses to send.
func upstreamStatus(code int) int {
	if code < 100 || code > 999 {
		return http.StatusBadGateway
	}
	return code
}

// NotFound answers every unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResp("Endpoint not found", r))
}
