package handlers

import (
	"net/http"
	"time"

	"ponder/internal/models"
)

// isoMillis matches the timestamp shape browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "Server is running!",
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}

// RouteCheck confirms the /api routes are mounted.
func (h *HealthHandler) RouteCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "API routes are working!"})
}
