package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/teampulse/analytics-api/internal/logic"
	"github.com/teampulse/analytics-api/internal/models"
)

// withURLParam injects a chi route parameter the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetAthlete(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		mockFunc       func(ctx context.Context, id int64) (*models.Athlete, error)
		expectedStatus int
	}{
		{
			name: "Found",
			id:   "7",
			mockFunc: func(ctx context.Context, id int64) (*models.Athlete, error) {
				return &models.Athlete{ID: id, Name: "Marcus Silva"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found",
			id:   "999",
			mockFunc: func(ctx context.Context, id int64) (*models.Athlete, error) {
				return nil, logic.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid ID",
			id:             "abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, &MockRosterService{GetAthleteFunc: tt.mockFunc})

			req := httptest.NewRequest("GET", "/api/v1/athletes/"+tt.id, nil)
			req = withURLParam(req, "id", tt.id)
			w := httptest.NewRecorder()
			h.GetAthlete(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestCreateAthlete(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Valid",
			body:           `{"name":"Marcus Silva","position":"Midfielder","team":"first-team","age":24}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Name",
			body:           `{"position":"Midfielder"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Age Out Of Range",
			body:           `{"name":"Kid","position":"Forward","age":9}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, &MockRosterService{})

			req := httptest.NewRequest("POST", "/api/v1/athletes", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.CreateAthlete(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestDeleteAthlete(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		h := newTestHandler(nil, &MockRosterService{})

		req := withURLParam(httptest.NewRequest("DELETE", "/api/v1/athletes/3", nil), "id", "3")
		w := httptest.NewRecorder()
		h.DeleteAthlete(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", w.Code)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		h := newTestHandler(nil, &MockRosterService{
			DeleteAthleteFunc: func(ctx context.Context, id int64) error { return logic.ErrNotFound },
		})

		req := withURLParam(httptest.NewRequest("DELETE", "/api/v1/athletes/3", nil), "id", "3")
		w := httptest.NewRecorder()
		h.DeleteAthlete(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestUpdateWellness(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error)
		expectedStatus int
	}{
		{
			name:           "Valid Partial Update",
			body:           `{"fatigue_score":8,"rest_days_last_week":1}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fatigue Out Of Range",
			body:           `{"fatigue_score":11}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Athlete",
			body: `{"fatigue_score":5}`,
			mockFunc: func(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error) {
				return nil, logic.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, &MockRosterService{UpsertWellnessFunc: tt.mockFunc})

			req := httptest.NewRequest("PUT", "/api/v1/athletes/5/wellness", strings.NewReader(tt.body))
			req = withURLParam(req, "id", "5")
			w := httptest.NewRecorder()
			h.UpdateWellness(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateWellness_PassesFieldsThrough(t *testing.T) {
	var got *models.UpdateWellnessRequest
	h := newTestHandler(nil, &MockRosterService{
		UpsertWellnessFunc: func(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error) {
			got = req
			return &models.WellnessProfile{AthleteID: id}, nil
		},
	})

	body := `{"fatigue_score":7,"high_intensity_pct":42.5,"previous_injuries":2}`
	req := withURLParam(httptest.NewRequest("PUT", "/api/v1/athletes/5/wellness", strings.NewReader(body)), "id", "5")
	w := httptest.NewRecorder()
	h.UpdateWellness(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.FatigueScore == nil || *got.FatigueScore != 7 {
		t.Errorf("fatigue_score not passed through: %+v", got.FatigueScore)
	}
	if got.HighIntensityPct == nil || *got.HighIntensityPct != 42.5 {
		t.Errorf("high_intensity_pct not passed through: %+v", got.HighIntensityPct)
	}
	if got.RestDaysLastWeek != nil {
		t.Error("rest_days_last_week should stay nil when omitted")
	}

	var profile models.WellnessProfile
	if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.AthleteID != 5 {
		t.Errorf("athlete_id = %d, want 5", profile.AthleteID)
	}
}
