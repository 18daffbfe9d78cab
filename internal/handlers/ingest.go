package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/teampulse/analytics-api/internal/models"
)

// IngestSessions handles POST /api/v1/ingest/sessions
// @Summary Ingest Session Telemetry
// @Description Accepts newline-separated JSON session records from tracking devices
// @Tags Ingestion
// @Accept json
// @Produce json
// @Security SourceToken
// @Param body body []models.SessionEvent true "Session records"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /ingest/sessions [post]
func (h *Handler) IngestSessions(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	sourceID, _ := r.Context().Value(sourceIDKey).(string)

	processed := 0
	dropped := 0
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var event models.SessionEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			h.logger.Warnw("Failed to unmarshal session event", "error", err)
			dropped++
			continue
		}
		if err := h.validator.Struct(&event); err != nil {
			h.logger.Warnw("Validation failed for session event", "error", err, "athlete_id", event.AthleteID)
			dropped++
			continue
		}
		if _, err := event.ParsedDate(); err != nil {
			h.logger.Warnw("Invalid session date", "error", err, "session_date", event.SessionDate)
			dropped++
			continue
		}

		// Stamp the authenticated source so payloads cannot spoof it.
		event.SourceID = sourceID

		if !h.pool.Enqueue(&event) {
			h.logger.Warn("Worker pool queue full, dropping remaining events in batch")
			break
		}
		processed++
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"status":    "accepted",
		"processed": processed,
		"dropped":   dropped,
	})
}
