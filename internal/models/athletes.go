package models

import "time"

// Athlete is the roster record stored in Postgres.
type Athlete struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Team      string    `json:"team,omitempty"`
	Age       *int      `json:"age,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WellnessProfile holds the slow-moving recovery inputs that session
// telemetry cannot provide. All fields are optional; the scoring engine
// substitutes neutral defaults for anything missing.
type WellnessProfile struct {
	AthleteID        int64      `json:"athlete_id"`
	RestDaysLastWeek *int       `json:"rest_days_last_week,omitempty"`
	FatigueScore     *int       `json:"fatigue_score,omitempty"` // 1=fresh .. 10=exhausted
	HighIntensityPct *float64   `json:"high_intensity_pct,omitempty"`
	PreviousInjuries *int       `json:"previous_injuries,omitempty"`
	DaysSinceInjury  *int       `json:"days_since_injury,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// AthleteMetrics is one athlete's aggregate over an evaluation window.
// Aggregates missing from the telemetry store stay at their zero value;
// the engine treats zero as "no data", never as an error.
type AthleteMetrics struct {
	AthleteID int64  `json:"athlete_id"`
	Name      string `json:"athlete_name"`
	Position  string `json:"position"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Age       *int   `json:"age,omitempty"`

	SessionCount         int     `json:"session_count"`
	TotalDurationMinutes int     `json:"total_minutes"`
	AvgDistanceKm        float64 `json:"avg_distance_km"`
	MaxSpeedKmh          float64 `json:"max_speed_kmh"`
	AvgHeartRate         int     `json:"avg_heart_rate"`
	MaxHeartRate         int     `json:"max_heart_rate"`
	TotalSprints         int     `json:"total_sprints"`

	Wellness *WellnessProfile `json:"-"`
}
