package models

import "time"

// SessionEvent is the incoming telemetry record posted by a tracking device
// or sync bridge when a training session completes. One event per session.
type SessionEvent struct {
	AthleteID       int64   `json:"athlete_id" validate:"required,gt=0"`
	SessionDate     string  `json:"session_date" validate:"required"` // RFC3339 or YYYY-MM-DD
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	SessionType     string  `json:"session_type,omitempty"`
	DistanceKm      float64 `json:"distance_km,omitempty" validate:"gte=0"`
	MaxSpeedKmh     float64 `json:"max_speed_kmh,omitempty" validate:"gte=0"`
	AvgHeartRate    int     `json:"avg_heart_rate,omitempty" validate:"gte=0,lte=250"`
	MaxHeartRate    int     `json:"max_heart_rate,omitempty" validate:"gte=0,lte=250"`
	Sprints         int     `json:"sprints,omitempty" validate:"gte=0"`
	Calories        int     `json:"calories,omitempty" validate:"gte=0"`

	// Populated server-side at ingest.
	EventID    string    `json:"event_id,omitempty"`
	SourceID   string    `json:"source_id,omitempty"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// ParsedDate resolves SessionDate, accepting full timestamps and bare dates.
func (e *SessionEvent) ParsedDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, e.SessionDate); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", e.SessionDate)
}
