package logic

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/teampulse/analytics-api/internal/models"
)

// ErrNotFound is returned when a requested roster entity does not exist.
var ErrNotFound = errors.New("not found")

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for the analytics response cache
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// MetricsAggregator supplies per-athlete aggregates over a day window.
// days must be positive; handlers validate before calling.
type MetricsAggregator interface {
	WindowAggregates(ctx context.Context, days int, team string) ([]models.AthleteMetrics, error)
}

// AnalyticsService runs the scoring engine over live aggregates.
type AnalyticsService interface {
	TrainingLoad(ctx context.Context, days int, team string) (*models.TrainingLoadResponse, error)
	InjuryRisk(ctx context.Context, team string) (*models.InjuryRiskResponse, error)
	Insights(ctx context.Context, days int, team string) (*models.InsightReport, error)
	RiskSummary(ctx context.Context, team string) (*models.CohortSummary, error)
	DemoPredictions(ctx context.Context, count int) (*models.InjuryRiskResponse, error)
}

// RosterService manages athletes and their wellness profiles.
type RosterService interface {
	ListAthletes(ctx context.Context, team string) ([]models.Athlete, error)
	GetAthlete(ctx context.Context, id int64) (*models.Athlete, error)
	CreateAthlete(ctx context.Context, req *models.CreateAthleteRequest) (*models.Athlete, error)
	UpdateAthlete(ctx context.Context, id int64, req *models.UpdateAthleteRequest) (*models.Athlete, error)
	DeleteAthlete(ctx context.Context, id int64) error
	UpsertWellness(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error)
}
