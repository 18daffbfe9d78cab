package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/analytics-api/internal/models"
)

type rosterService struct {
	pg PgPool
}

func NewRosterService(pg PgPool) RosterService {
	return &rosterService{pg: pg}
}

const athleteColumns = `id, name, position, COALESCE(team, ''), age, COALESCE(photo_url, ''), created_at, updated_at`

func scanAthlete(row pgx.Row) (*models.Athlete, error) {
	var a models.Athlete
	err := row.Scan(&a.ID, &a.Name, &a.Position, &a.Team, &a.Age, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *rosterService) ListAthletes(ctx context.Context, team string) ([]models.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes`
	args := []any{}
	if team != "" {
		query += ` WHERE team = $1`
		args = append(args, team)
	}
	query += ` ORDER BY name`

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	defer rows.Close()

	athletes := make([]models.Athlete, 0)
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		athletes = append(athletes, *a)
	}
	return athletes, rows.Err()
}

func (s *rosterService) GetAthlete(ctx context.Context, id int64) (*models.Athlete, error) {
	row := s.pg.QueryRow(ctx, `SELECT `+athleteColumns+` FROM athletes WHERE id = $1`, id)
	return scanAthlete(row)
}

func (s *rosterService) CreateAthlete(ctx context.Context, req *models.CreateAthleteRequest) (*models.Athlete, error) {
	row := s.pg.QueryRow(ctx, `
		INSERT INTO athletes (name, position, team, age, photo_url)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
		RETURNING `+athleteColumns,
		req.Name, req.Position, req.Team, req.Age, req.PhotoURL)
	a, err := scanAthlete(row)
	if err != nil {
		return nil, fmt.Errorf("create athlete: %w", err)
	}
	return a, nil
}

func (s *rosterService) UpdateAthlete(ctx context.Context, id int64, req *models.UpdateAthleteRequest) (*models.Athlete, error) {
	row := s.pg.QueryRow(ctx, `
		UPDATE athletes SET
			name = COALESCE($2, name),
			position = COALESCE($3, position),
			team = COALESCE($4, team),
			age = COALESCE($5, age),
			photo_url = COALESCE($6, photo_url),
			updated_at = now()
		WHERE id = $1
		RETURNING `+athleteColumns,
		id, req.Name, req.Position, req.Team, req.Age, req.PhotoURL)
	return scanAthlete(row)
}

func (s *rosterService) DeleteAthlete(ctx context.Context, id int64) error {
	tag, err := s.pg.Exec(ctx, `DELETE FROM athletes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *rosterService) UpsertWellness(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error) {
	// The athlete must exist; the FK would catch it anyway but this gives a
	// clean 404 instead of a constraint error.
	if _, err := s.GetAthlete(ctx, id); err != nil {
		return nil, err
	}

	row := s.pg.QueryRow(ctx, `
		INSERT INTO wellness_profiles
			(athlete_id, rest_days_last_week, fatigue_score, high_intensity_pct,
			 previous_injuries, days_since_injury, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (athlete_id) DO UPDATE SET
			rest_days_last_week = COALESCE(EXCLUDED.rest_days_last_week, wellness_profiles.rest_days_last_week),
			fatigue_score = COALESCE(EXCLUDED.fatigue_score, wellness_profiles.fatigue_score),
			high_intensity_pct = COALESCE(EXCLUDED.high_intensity_pct, wellness_profiles.high_intensity_pct),
			previous_injuries = COALESCE(EXCLUDED.previous_injuries, wellness_profiles.previous_injuries),
			days_since_injury = COALESCE(EXCLUDED.days_since_injury, wellness_profiles.days_since_injury),
			updated_at = now()
		RETURNING athlete_id, rest_days_last_week, fatigue_score, high_intensity_pct,
			previous_injuries, days_since_injury, updated_at`,
		id, req.RestDaysLastWeek, req.FatigueScore, req.HighIntensityPct,
		req.PreviousInjuries, req.DaysSinceInjury)

	var w models.WellnessProfile
	if err := row.Scan(&w.AthleteID, &w.RestDaysLastWeek, &w.FatigueScore, &w.HighIntensityPct,
		&w.PreviousInjuries, &w.DaysSinceInjury, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert wellness: %w", err)
	}
	return &w, nil
}
