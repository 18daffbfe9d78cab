package handlers

import (
	"context"

	"github.com/teampulse/analytics-api/internal/models"
)

// MockAnalyticsService
type MockAnalyticsService struct {
	TrainingLoadFunc    func(ctx context.Context, days int, team string) (*models.TrainingLoadResponse, error)
	InjuryRiskFunc      func(ctx context.Context, team string) (*models.InjuryRiskResponse, error)
	InsightsFunc        func(ctx context.Context, days int, team string) (*models.InsightReport, error)
	RiskSummaryFunc     func(ctx context.Context, team string) (*models.CohortSummary, error)
	DemoPredictionsFunc func(ctx context.Context, count int) (*models.InjuryRiskResponse, error)
}

func (m *MockAnalyticsService) TrainingLoad(ctx context.Context, days int, team string) (*models.TrainingLoadResponse, error) {
	if m.TrainingLoadFunc != nil {
		return m.TrainingLoadFunc(ctx, days, team)
	}
	return &models.TrainingLoadResponse{PeriodDays: days}, nil
}

func (m *MockAnalyticsService) InjuryRisk(ctx context.Context, team string) (*models.InjuryRiskResponse, error) {
	if m.InjuryRiskFunc != nil {
		return m.InjuryRiskFunc(ctx, team)
	}
	return &models.InjuryRiskResponse{}, nil
}

func (m *MockAnalyticsService) Insights(ctx context.Context, days int, team string) (*models.InsightReport, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx, days, team)
	}
	return &models.InsightReport{}, nil
}

func (m *MockAnalyticsService) RiskSummary(ctx context.Context, team string) (*models.CohortSummary, error) {
	if m.RiskSummaryFunc != nil {
		return m.RiskSummaryFunc(ctx, team)
	}
	return &models.CohortSummary{}, nil
}

func (m *MockAnalyticsService) DemoPredictions(ctx context.Context, count int) (*models.InjuryRiskResponse, error) {
	if m.DemoPredictionsFunc != nil {
		return m.DemoPredictionsFunc(ctx, count)
	}
	return &models.InjuryRiskResponse{}, nil
}

// MockRosterService
type MockRosterService struct {
	ListAthletesFunc   func(ctx context.Context, team string) ([]models.Athlete, error)
	GetAthleteFunc     func(ctx context.Context, id int64) (*models.Athlete, error)
	CreateAthleteFunc  func(ctx context.Context, req *models.CreateAthleteRequest) (*models.Athlete, error)
	UpdateAthleteFunc  func(ctx context.Context, id int64, req *models.UpdateAthleteRequest) (*models.Athlete, error)
	DeleteAthleteFunc  func(ctx context.Context, id int64) error
	UpsertWellnessFunc func(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error)
}

func (m *MockRosterService) ListAthletes(ctx context.Context, team string) ([]models.Athlete, error) {
	if m.ListAthletesFunc != nil {
		return m.ListAthletesFunc(ctx, team)
	}
	return nil, nil
}

func (m *MockRosterService) GetAthlete(ctx context.Context, id int64) (*models.Athlete, error) {
	if m.GetAthleteFunc != nil {
		return m.GetAthleteFunc(ctx, id)
	}
	return &models.Athlete{ID: id}, nil
}

func (m *MockRosterService) CreateAthlete(ctx context.Context, req *models.CreateAthleteRequest) (*models.Athlete, error) {
	if m.CreateAthleteFunc != nil {
		return m.CreateAthleteFunc(ctx, req)
	}
	return &models.Athlete{ID: 1, Name: req.Name}, nil
}

func (m *MockRosterService) UpdateAthlete(ctx context.Context, id int64, req *models.UpdateAthleteRequest) (*models.Athlete, error) {
	if m.UpdateAthleteFunc != nil {
		return m.UpdateAthleteFunc(ctx, id, req)
	}
	return &models.Athlete{ID: id}, nil
}

func (m *MockRosterService) DeleteAthlete(ctx context.Context, id int64) error {
	if m.DeleteAthleteFunc != nil {
		return m.DeleteAthleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRosterService) UpsertWellness(ctx context.Context, id int64, req *models.UpdateWellnessRequest) (*models.WellnessProfile, error) {
	if m.UpsertWellnessFunc != nil {
		return m.UpsertWellnessFunc(ctx, id, req)
	}
	return &models.WellnessProfile{AthleteID: id}, nil
}

// MockIngestQueue records enqueued events.
type MockIngestQueue struct {
	EnqueueFunc func(event *models.SessionEvent) bool
	Enqueued    []*models.SessionEvent
}

func (m *MockIngestQueue) Enqueue(event *models.SessionEvent) bool {
	m.Enqueued = append(m.Enqueued, event)
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(event)
	}
	return true
}

func (m *MockIngestQueue) QueueDepth() int { return len(m.Enqueued) }
