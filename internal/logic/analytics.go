package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teampulse/analytics-api/internal/models"
	"github.com/teampulse/analytics-api/internal/scoring"
)

// riskWindowDays is the aggregate window for injury-risk analysis. The risk
// thresholds are calibrated against weekly figures, so the aggregates are
// normalized from this window down to 7 days before scoring.
const riskWindowDays = 14

const summaryCacheTTL = 60 * time.Second

type analyticsService struct {
	agg    MetricsAggregator
	cache  RedisClient
	logger *zap.SugaredLogger
}

// NewAnalyticsService wires the aggregator and the scoring engine together.
// cache may be nil; summaries are then computed on every call.
func NewAnalyticsService(agg MetricsAggregator, cache RedisClient, logger *zap.SugaredLogger) AnalyticsService {
	return &analyticsService{agg: agg, cache: cache, logger: logger}
}

func (s *analyticsService) TrainingLoad(ctx context.Context, days int, team string) (*models.TrainingLoadResponse, error) {
	metrics, err := s.agg.WindowAggregates(ctx, days, team)
	if err != nil {
		return nil, fmt.Errorf("training load aggregates: %w", err)
	}

	athletes := make([]models.LoadAssessment, 0, len(metrics))
	for _, m := range metrics {
		score := scoring.LoadScore(m.TotalDurationMinutes, days)
		status, recommendation := scoring.LoadStatus(score)
		athletes = append(athletes, models.LoadAssessment{
			AthleteID:      m.AthleteID,
			Name:           m.Name,
			Position:       m.Position,
			PhotoURL:       m.PhotoURL,
			SessionCount:   m.SessionCount,
			TotalMinutes:   m.TotalDurationMinutes,
			AvgDistanceKm:  m.AvgDistanceKm,
			MaxSpeedKmh:    m.MaxSpeedKmh,
			AvgHeartRate:   m.AvgHeartRate,
			LoadScore:      score,
			Status:         status,
			Recommendation: recommendation,
		})
	}
	scoring.RankByLoad(athletes)

	return &models.TrainingLoadResponse{
		PeriodDays:    days,
		TotalAthletes: len(athletes),
		Athletes:      athletes,
	}, nil
}

func (s *analyticsService) InjuryRisk(ctx context.Context, team string) (*models.InjuryRiskResponse, error) {
	metrics, err := s.agg.WindowAggregates(ctx, riskWindowDays, team)
	if err != nil {
		return nil, fmt.Errorf("injury risk aggregates: %w", err)
	}

	// Each athlete scores independently; fan out and collect by index so
	// the pre-ranking order stays deterministic.
	athletes := make([]models.RiskAssessment, len(metrics))
	g, _ := errgroup.WithContext(ctx)
	for i, m := range metrics {
		g.Go(func() error {
			athletes[i] = assess(m, riskWindowDays)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scoring.RankByRisk(athletes)
	summary := scoring.Summarize(athletes)

	return &models.InjuryRiskResponse{
		TotalAthletes: len(athletes),
		Summary:       summary,
		Athletes:      athletes,
	}, nil
}

func (s *analyticsService) Insights(ctx context.Context, days int, team string) (*models.InsightReport, error) {
	metrics, err := s.agg.WindowAggregates(ctx, days, team)
	if err != nil {
		return nil, fmt.Errorf("insight aggregates: %w", err)
	}
	report := scoring.BuildInsights(metrics, days)
	return &report, nil
}

func (s *analyticsService) RiskSummary(ctx context.Context, team string) (*models.CohortSummary, error) {
	key := "analytics:risk_summary:all"
	if team != "" {
		key = "analytics:risk_summary:" + team
	}

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached models.CohortSummary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.InjuryRisk(ctx, team)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp.Summary); err == nil {
			if err := s.cache.Set(ctx, key, raw, summaryCacheTTL).Err(); err != nil {
				s.logger.Warnw("Failed to cache risk summary", "key", key, "error", err)
			}
		}
	}
	return &resp.Summary, nil
}

func (s *analyticsService) DemoPredictions(ctx context.Context, count int) (*models.InjuryRiskResponse, error) {
	if count <= 0 {
		count = 20
	}
	if count > 100 {
		count = 100
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	squad := scoring.GenerateSquad(rng, count)

	athletes := make([]models.RiskAssessment, 0, len(squad))
	for _, a := range squad {
		result := scoring.EvaluateRisk(a.Inputs)
		athletes = append(athletes, models.RiskAssessment{
			AthleteID:      a.ID,
			Name:           a.Name,
			Position:       a.Position,
			Age:            a.Age,
			RiskScore:      result.RiskScore,
			RiskLevel:      result.RiskLevel,
			RiskFactors:    result.RiskFactors,
			Recommendation: result.Recommendation,
			Metrics:        result.Metrics,
		})
	}

	scoring.RankByRisk(athletes)
	return &models.InjuryRiskResponse{
		TotalAthletes: len(athletes),
		Summary:       scoring.Summarize(athletes),
		Athletes:      athletes,
	}, nil
}

// assess maps one athlete's window aggregates into the canonical risk engine.
// Volume figures are normalized to weekly before applying the weekly-tuned
// thresholds; wellness inputs come from the stored profile when present.
func assess(m models.AthleteMetrics, windowDays int) models.RiskAssessment {
	in := scoring.RiskInputs{Age: m.Age}
	if m.TotalDurationMinutes > 0 {
		weekly := int(math.Round(float64(m.TotalDurationMinutes) * 7 / float64(windowDays)))
		in.WeeklyMinutes = &weekly
	}
	if m.TotalSprints > 0 {
		weeklySprints := int(math.Round(float64(m.TotalSprints) * 7 / float64(windowDays)))
		in.WeeklySprints = &weeklySprints
	}
	if w := m.Wellness; w != nil {
		in.RestDays = w.RestDaysLastWeek
		in.FatigueScore = w.FatigueScore
		in.HighIntensityPct = w.HighIntensityPct
		in.PreviousInjuries = w.PreviousInjuries
		in.DaysSinceInjury = w.DaysSinceInjury
	}

	result := scoring.EvaluateRisk(in)
	return models.RiskAssessment{
		AthleteID:      m.AthleteID,
		Name:           m.Name,
		Position:       m.Position,
		PhotoURL:       m.PhotoURL,
		Age:            result.Metrics.Age,
		RiskScore:      result.RiskScore,
		RiskLevel:      result.RiskLevel,
		RiskFactors:    result.RiskFactors,
		Recommendation: result.Recommendation,
		Metrics:        result.Metrics,
	}
}
