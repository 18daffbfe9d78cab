package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/teampulse/analytics-api/internal/models"
	"github.com/teampulse/analytics-api/internal/scoring"
)

func scoringAthlete(minutes, sprints int) scoring.SynthAthlete {
	return scoring.SynthAthlete{
		ID:               1,
		Name:             "Test Athlete",
		Position:         "Midfielder",
		Age:              24,
		Inputs:           scoring.RiskInputs{WeeklyMinutes: &minutes, WeeklySprints: &sprints},
		SessionsThisWeek: 7,
		AvgHeartRate:     150,
		MaxHeartRate:     185,
		TotalDistanceKm:  40,
	}
}

// fakeAPI records the seeding calls so tests can assert ordering: the roster
// must exist before any telemetry is posted.
type fakeAPI struct {
	nextID        int64
	created       []models.CreateAthleteRequest
	wellnessIDs   []int64
	sessionLines  int
	sessionIDs    map[int64]bool
	ingestedAfter bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/athletes", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateAthleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.created = append(f.created, req)
		f.nextID++
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Athlete{ID: f.nextID, Name: req.Name, Position: req.Position})
	})

	mux.HandleFunc("PUT /api/v1/athletes/{id}/wellness", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		fmt.Sscanf(r.PathValue("id"), "%d", &id)
		f.wellnessIDs = append(f.wellnessIDs, id)
		json.NewEncoder(w).Encode(models.WellnessProfile{AthleteID: id})
	})

	mux.HandleFunc("POST /api/v1/ingest/sessions", func(w http.ResponseWriter, r *http.Request) {
		if len(f.created) == 0 {
			f.ingestedAfter = false
		} else {
			f.ingestedAfter = true
		}
		body, _ := io.ReadAll(r.Body)
		f.sessionIDs = make(map[int64]bool)
		for _, line := range strings.Split(string(body), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			var event models.SessionEvent
			if err := json.Unmarshal([]byte(line), &event); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.sessionLines++
			f.sessionIDs[event.AthleteID] = true
		}
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "accepted", "processed": f.sessionLines})
	})

	return mux
}

func TestRunSeedsRosterBeforeSessions(t *testing.T) {
	api := &fakeAPI{nextID: 100} // server-assigned ids, not 1..N
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	s := &seeder{
		client:  srv.Client(),
		baseURL: srv.URL,
		token:   "seed-token",
	}

	rng := rand.New(rand.NewSource(42))
	created, sessions, err := s.run(rng, 5, 14)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if created != 5 || len(api.created) != 5 {
		t.Errorf("athletes created = %d (server saw %d), want 5", created, len(api.created))
	}
	if len(api.wellnessIDs) != 5 {
		t.Errorf("wellness profiles = %d, want 5", len(api.wellnessIDs))
	}
	if sessions == 0 || api.sessionLines != sessions {
		t.Errorf("sessions = %d, server saw %d", sessions, api.sessionLines)
	}
	if !api.ingestedAfter {
		t.Error("telemetry was posted before the roster existed")
	}

	// Every session must reference a server-assigned id, never the synthetic
	// generator's local numbering.
	for id := range api.sessionIDs {
		if id <= 100 || id > 105 {
			t.Errorf("session references unknown athlete id %d", id)
		}
	}
	for _, id := range api.wellnessIDs {
		if id <= 100 || id > 105 {
			t.Errorf("wellness references unknown athlete id %d", id)
		}
	}
}

func TestBuildSessionsUsesAssignedID(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	minutes := 560
	sprints := 48
	athlete := scoringAthlete(minutes, sprints)

	events := buildSessions(rng, athlete, 9001, 14)
	if len(events) == 0 {
		t.Fatal("expected at least one session for a 7-days-a-week athlete")
	}
	for _, e := range events {
		if e.AthleteID != 9001 {
			t.Fatalf("athlete_id = %d, want 9001", e.AthleteID)
		}
		if e.DurationMinutes <= 0 {
			t.Errorf("non-positive duration %d would fail ingest validation", e.DurationMinutes)
		}
		if _, err := time.Parse("2006-01-02", e.SessionDate); err != nil {
			t.Errorf("bad session date %q: %v", e.SessionDate, err)
		}
	}
}
