package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ponder/internal/models"
)

type relayService interface {
	Relay(ctx context.Context, req models.ClaudeRequest) (json.RawMessage, error)
}

type ChatHandler struct {
	relay        relayService
	maxBodyBytes int64
}

func NewChatHandler(relay relayService, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{relay: relay, maxBodyBytes: maxBodyBytes}
}

// Claude relays a conversation upstream and writes the upstream body unchanged.
func (h *ChatHandler) Claude(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req models.ClaudeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("Request body too large", r))
			return
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			writeJSON(w, http.StatusBadRequest, errorResp(fmt.Sprintf("Invalid request: %s must be %s", typeErr.Field, expectedType(typeErr.Field)), r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request: body must be JSON", r))
		return
	}

	body, err := h.relay.Relay(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func expectedType(field string) string {
	switch field {
	case "max_tokens":
		return "a whole number"
	case "model":
		return "a string"
	default:
		return "of the expected type"
	}
}
