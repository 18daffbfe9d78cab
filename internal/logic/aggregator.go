package logic

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"golang.org/x/sync/errgroup"

	"github.com/teampulse/analytics-api/internal/models"
)

type metricsAggregator struct {
	ch driver.Conn
	pg PgPool
}

// NewMetricsAggregator builds the aggregator over the ClickHouse telemetry
// store and the Postgres roster.
func NewMetricsAggregator(ch driver.Conn, pg PgPool) MetricsAggregator {
	return &metricsAggregator{ch: ch, pg: pg}
}

type rosterEntry struct {
	athlete  models.Athlete
	wellness *models.WellnessProfile
}

type windowAggregate struct {
	sessions     int64
	totalMinutes int64
	avgDistance  float64
	maxSpeed     float64
	avgHeartRate int64
	maxHeartRate int64
	totalSprints int64
}

// WindowAggregates returns one metrics record per athlete that trained inside
// the window. Roster and telemetry are fetched in parallel and merged;
// athletes with no sessions in the window are excluded, matching the
// inner-join semantics the dashboard expects.
func (a *metricsAggregator) WindowAggregates(ctx context.Context, days int, team string) ([]models.AthleteMetrics, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var roster map[int64]rosterEntry
	var rosterOrder []int64
	var aggregates map[int64]windowAggregate

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, rosterOrder, err = a.fetchRoster(ctx, team)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		aggregates, err = a.fetchAggregates(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("session aggregates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := make([]models.AthleteMetrics, 0, len(aggregates))
	for _, id := range rosterOrder {
		agg, trained := aggregates[id]
		if !trained {
			continue
		}
		entry := roster[id]
		metrics = append(metrics, models.AthleteMetrics{
			AthleteID:            id,
			Name:                 entry.athlete.Name,
			Position:             entry.athlete.Position,
			PhotoURL:             entry.athlete.PhotoURL,
			Age:                  entry.athlete.Age,
			SessionCount:         int(agg.sessions),
			TotalDurationMinutes: int(agg.totalMinutes),
			AvgDistanceKm:        round2(agg.avgDistance),
			MaxSpeedKmh:          round2(agg.maxSpeed),
			AvgHeartRate:         int(agg.avgHeartRate),
			MaxHeartRate:         int(agg.maxHeartRate),
			TotalSprints:         int(agg.totalSprints),
			Wellness:             entry.wellness,
		})
	}
	return metrics, nil
}

func (a *metricsAggregator) fetchRoster(ctx context.Context, team string) (map[int64]rosterEntry, []int64, error) {
	query := `
		SELECT a.id, a.name, a.position, COALESCE(a.team, ''), a.age, COALESCE(a.photo_url, ''),
		       w.rest_days_last_week, w.fatigue_score, w.high_intensity_pct,
		       w.previous_injuries, w.days_since_injury
		FROM athletes a
		LEFT JOIN wellness_profiles w ON w.athlete_id = a.id
	`
	args := []any{}
	if team != "" {
		query += " WHERE a.team = $1"
		args = append(args, team)
	}
	query += " ORDER BY a.id"

	rows, err := a.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	roster := make(map[int64]rosterEntry)
	order := make([]int64, 0)
	for rows.Next() {
		var ath models.Athlete
		var w models.WellnessProfile
		if err := rows.Scan(
			&ath.ID, &ath.Name, &ath.Position, &ath.Team, &ath.Age, &ath.PhotoURL,
			&w.RestDaysLastWeek, &w.FatigueScore, &w.HighIntensityPct,
			&w.PreviousInjuries, &w.DaysSinceInjury,
		); err != nil {
			return nil, nil, err
		}
		entry := rosterEntry{athlete: ath}
		if w.RestDaysLastWeek != nil || w.FatigueScore != nil || w.HighIntensityPct != nil ||
			w.PreviousInjuries != nil || w.DaysSinceInjury != nil {
			w.AthleteID = ath.ID
			entry.wellness = &w
		}
		roster[ath.ID] = entry
		order = append(order, ath.ID)
	}
	return roster, order, rows.Err()
}

func (a *metricsAggregator) fetchAggregates(ctx context.Context, cutoff time.Time) (map[int64]windowAggregate, error) {
	rows, err := a.ch.Query(ctx, `
		SELECT
			athlete_id,
			toInt64(count()) AS sessions,
			toInt64(sum(duration_minutes)) AS total_minutes,
			avg(distance_km) AS avg_distance,
			toFloat64(max(max_speed_kmh)) AS max_speed,
			toInt64(round(avg(avg_heart_rate))) AS avg_hr,
			toInt64(max(max_heart_rate)) AS max_hr,
			toInt64(sum(sprints)) AS total_sprints
		FROM athletics.session_metrics
		WHERE session_date >= ?
		GROUP BY athlete_id
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregates := make(map[int64]windowAggregate)
	for rows.Next() {
		var id int64
		var agg windowAggregate
		if err := rows.Scan(
			&id, &agg.sessions, &agg.totalMinutes, &agg.avgDistance,
			&agg.maxSpeed, &agg.avgHeartRate, &agg.maxHeartRate, &agg.totalSprints,
		); err != nil {
			return nil, err
		}
		aggregates[id] = agg
	}
	return aggregates, rows.Err()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
