package handlers

import (
	"net/http"
	"strconv"

	"github.com/secondli/secondli-be/internal/storage"
)

// EventHandler handles HTTP requests for the recent-activity feed.
type EventHandler struct {
	store storage.EventStore
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(store storage.EventStore) *EventHandler {
	return &EventHandler{store: store}
}

// GetRecent handles the request to get recent activity, newest first.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	respondJSON(w, http.StatusOK, h.store.RecentEvents(limit))
}
