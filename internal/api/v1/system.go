package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vmunix/cliparr/internal/events"
)

const maxEventLimit = 1000

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be non-negative")
		return
	}
	if limit == 0 || limit > maxEventLimit {
		limit = maxEventLimit
	}

	q := events.Query{
		EventType:  r.URL.Query().Get("type"),
		EntityType: r.URL.Query().Get("entity_type"),
		Limit:      uint64(limit),
	}
	if since := r.URL.Query().Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "since must be RFC3339")
			return
		}
		q.Since = t.UTC()
	}

	raw, err := s.deps.Events.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listEventsResponse{Events: make([]EventResponse, len(raw)), Count: len(raw)}
	for i, e := range raw {
		resp.Events[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Payload:    json.RawMessage(e.Payload),
			OccurredAt: formatTime(e.OccurredAt),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	mode, err := s.deps.Modes.Mode(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:        "ok",
		Version:       s.deps.Version,
		ImportMode:    mode,
		PollerRunning: s.deps.Modes.Running(),
	})
}

func (s *Server) websocketTest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, websocketTestResponse{
		Status:  "WebSocket server is running",
		Clients: s.deps.Hub.Clients(),
	})
}
