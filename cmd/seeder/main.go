package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/teampulse/analytics-api/internal/models"
	"github.com/teampulse/analytics-api/internal/scoring"
)

// Seeds a running API with a synthetic squad: athletes first (the analytics
// aggregator joins telemetry against the roster, so sessions for unknown
// athletes would never surface), then wellness profiles, then session
// telemetry. The ingest endpoint expects one JSON object per line and a
// registered source token (see POST /api/v1/sources/register).

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	token := flag.String("token", "", "source token (required)")
	athletes := flag.Int("athletes", 20, "number of athletes to generate")
	days := flag.Int("days", 14, "how many days of history to backfill")
	seed := flag.Int64("seed", 0, "rng seed (0 = time-based)")
	flag.Parse()

	if *token == "" {
		log.Fatal("missing -token; register a source first")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	s := &seeder{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(*baseURL, "/"),
		token:   *token,
	}

	created, sessions, err := s.run(rng, *athletes, *days)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Printf("Seed: %d\n", *seed)
	fmt.Printf("Athletes created: %d\n", created)
	fmt.Printf("Sessions ingested: %d\n", sessions)
}

type seeder struct {
	client  *http.Client
	baseURL string
	token   string
}

// run creates the squad, stores each athlete's wellness inputs, and posts the
// backfilled telemetry. Returns how many athletes and sessions were seeded.
func (s *seeder) run(rng *rand.Rand, athletes, days int) (int, int, error) {
	squad := scoring.GenerateSquad(rng, athletes)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	total := 0

	for _, athlete := range squad {
		id, err := s.createAthlete(athlete)
		if err != nil {
			return 0, 0, fmt.Errorf("create athlete %q: %w", athlete.Name, err)
		}
		if err := s.putWellness(id, athlete.Inputs); err != nil {
			return 0, 0, fmt.Errorf("wellness for athlete %d: %w", id, err)
		}

		for _, event := range buildSessions(rng, athlete, id, days) {
			if err := enc.Encode(event); err != nil {
				return 0, 0, fmt.Errorf("marshal event: %w", err)
			}
			total++
		}
	}

	if err := s.postSessions(&buf); err != nil {
		return 0, 0, err
	}
	return len(squad), total, nil
}

func (s *seeder) createAthlete(a scoring.SynthAthlete) (int64, error) {
	age := a.Age
	payload, err := json.Marshal(models.CreateAthleteRequest{
		Name:     a.Name,
		Position: a.Position,
		Age:      &age,
	})
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Post(s.baseURL+"/api/v1/athletes", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("status %s: %s", resp.Status, body)
	}

	var created models.Athlete
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (s *seeder) putWellness(id int64, in scoring.RiskInputs) error {
	payload, err := json.Marshal(models.UpdateWellnessRequest{
		RestDaysLastWeek: in.RestDays,
		FatigueScore:     in.FatigueScore,
		HighIntensityPct: in.HighIntensityPct,
		PreviousInjuries: in.PreviousInjuries,
		DaysSinceInjury:  in.DaysSinceInjury,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/athletes/%d/wellness", s.baseURL, id)
	req, err := http.NewRequest("PUT", url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %s: %s", resp.Status, body)
	}
	return nil
}

func (s *seeder) postSessions(body io.Reader) error {
	req, err := http.NewRequest("POST", s.baseURL+"/api/v1/ingest/sessions", body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Source-Token", s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Ingest status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("ingest rejected: %s", resp.Status)
	}
	return nil
}

// buildSessions spreads the athlete's weekly volume across the backfill
// window using the roster id the API assigned.
func buildSessions(rng *rand.Rand, athlete scoring.SynthAthlete, id int64, days int) []models.SessionEvent {
	perSession := 0
	if athlete.SessionsThisWeek > 0 {
		perSession = *athlete.Inputs.WeeklyMinutes / athlete.SessionsThisWeek
	}

	events := make([]models.SessionEvent, 0, days)
	for d := 0; d < days; d++ {
		if rng.Float64() > float64(athlete.SessionsThisWeek)/7.0 {
			continue
		}

		events = append(events, models.SessionEvent{
			AthleteID:       id,
			SessionDate:     time.Now().AddDate(0, 0, -d).Format("2006-01-02"),
			DurationMinutes: jitter(rng, perSession, 15),
			SessionType:     "training",
			DistanceKm:      athlete.TotalDistanceKm / float64(days),
			MaxSpeedKmh:     24 + rng.Float64()*12,
			AvgHeartRate:    jitter(rng, athlete.AvgHeartRate, 8),
			MaxHeartRate:    jitter(rng, athlete.MaxHeartRate, 5),
			Sprints:         *athlete.Inputs.WeeklySprints / 4,
			Calories:        jitter(rng, perSession*9, 100),
		})
	}
	return events
}

func jitter(rng *rand.Rand, base, spread int) int {
	if base <= 0 {
		return 0
	}
	v := base + rng.Intn(2*spread+1) - spread
	if v < 1 {
		v = 1
	}
	return v
}
