package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/teampulse/analytics-api/internal/models"
)

func ingestRequest(body string) *http.Request {
	req := httptest.NewRequest("POST", "/api/v1/ingest/sessions", strings.NewReader(body))
	// Simulate the source auth middleware.
	ctx := context.WithValue(req.Context(), sourceIDKey, "src-test")
	return req.WithContext(ctx)
}

func TestIngestSessions_TableDriven(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		enqueue       func(*models.SessionEvent) bool
		wantStatus    int
		wantProcessed int
		wantDropped   int
	}{
		{
			name:          "Valid Single Event",
			body:          `{"athlete_id":1,"session_date":"2024-03-01","duration_minutes":75}`,
			wantStatus:    http.StatusAccepted,
			wantProcessed: 1,
		},
		{
			name: "Multiple Lines",
			body: `{"athlete_id":1,"session_date":"2024-03-01","duration_minutes":75}` + "\n" +
				`{"athlete_id":2,"session_date":"2024-03-01T09:30:00Z","duration_minutes":60,"sprints":14}`,
			wantStatus:    http.StatusAccepted,
			wantProcessed: 2,
		},
		{
			name:          "Invalid JSON Dropped",
			body:          `{broken`,
			wantStatus:    http.StatusAccepted,
			wantProcessed: 0,
			wantDropped:   1,
		},
		{
			name:        "Missing Athlete Dropped",
			body:        `{"session_date":"2024-03-01","duration_minutes":75}`,
			wantStatus:  http.StatusAccepted,
			wantDropped: 1,
		},
		{
			name:        "Bad Date Dropped",
			body:        `{"athlete_id":1,"session_date":"March 1st","duration_minutes":75}`,
			wantStatus:  http.StatusAccepted,
			wantDropped: 1,
		},
		{
			name: "Mixed Valid And Invalid",
			body: `{"athlete_id":1,"session_date":"2024-03-01","duration_minutes":75}` + "\n\n" +
				`{"athlete_id":0,"session_date":"2024-03-01","duration_minutes":75}` + "\n" +
				`{"athlete_id":2,"session_date":"2024-03-02","duration_minutes":45}`,
			wantStatus:    http.StatusAccepted,
			wantProcessed: 2,
			wantDropped:   1,
		},
		{
			name:          "Queue Full Stops Batch",
			body:          `{"athlete_id":1,"session_date":"2024-03-01","duration_minutes":75}`,
			enqueue:       func(e *models.SessionEvent) bool { return false },
			wantStatus:    http.StatusAccepted,
			wantProcessed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockIngestQueue{EnqueueFunc: tt.enqueue}
			h := newTestHandler(nil, nil)
			h.pool = queue

			w := httptest.NewRecorder()
			h.IngestSessions(w, ingestRequest(tt.body))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp struct {
				Status    string `json:"status"`
				Processed int    `json:"processed"`
				Dropped   int    `json:"dropped"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Processed != tt.wantProcessed {
				t.Errorf("processed = %d, want %d", resp.Processed, tt.wantProcessed)
			}
			if resp.Dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", resp.Dropped, tt.wantDropped)
			}
		})
	}
}

func TestIngestSessions_StampsAuthenticatedSource(t *testing.T) {
	queue := &MockIngestQueue{}
	h := newTestHandler(nil, nil)
	h.pool = queue

	// Payload claims a different source; the stamp must win.
	body := `{"athlete_id":1,"session_date":"2024-03-01","duration_minutes":75,"source_id":"spoofed"}`
	w := httptest.NewRecorder()
	h.IngestSessions(w, ingestRequest(body))

	if len(queue.Enqueued) != 1 {
		t.Fatalf("enqueued = %d, want 1", len(queue.Enqueued))
	}
	if queue.Enqueued[0].SourceID != "src-test" {
		t.Errorf("source_id = %q, want src-test", queue.Enqueued[0].SourceID)
	}
}
