package models

// RiskFactor is one triggered rule in a risk assessment. Field names are a
// wire contract consumed by the dashboard; do not rename.
type RiskFactor struct {
	Factor       string  `json:"factor"`
	Description  string  `json:"description"`
	Contribution float64 `json:"contribution"`
	Severity     string  `json:"severity"` // "high" or "medium"
}

// MetricsAnalyzed echoes the (defaulted) inputs a risk assessment was
// computed from, for traceability.
type MetricsAnalyzed struct {
	WeeklyTrainingMinutes int     `json:"weekly_training_minutes"`
	HighIntensityPct      float64 `json:"high_intensity_percentage"`
	RestDays              int     `json:"rest_days"`
	FatigueScore          int     `json:"fatigue_score"`
	SprintCount           int     `json:"sprint_count"`
	Age                   int     `json:"age"`
}

// RiskAssessment is the injury-risk result for a single athlete.
type RiskAssessment struct {
	AthleteID      int64           `json:"athlete_id"`
	Name           string          `json:"athlete_name"`
	Position       string          `json:"position,omitempty"`
	PhotoURL       string          `json:"photo_url,omitempty"`
	Age            int             `json:"age"`
	RiskScore      float64         `json:"risk_score"`
	RiskLevel      string          `json:"risk_level"`
	RiskFactors    []RiskFactor    `json:"risk_factors"`
	Recommendation string          `json:"recommendation"`
	Metrics        MetricsAnalyzed `json:"metrics_analyzed"`
}

// LoadAssessment is the training-load result for a single athlete.
type LoadAssessment struct {
	AthleteID      int64   `json:"athlete_id"`
	Name           string  `json:"athlete_name"`
	Position       string  `json:"position,omitempty"`
	PhotoURL       string  `json:"photo_url,omitempty"`
	SessionCount   int     `json:"session_count"`
	TotalMinutes   int     `json:"total_minutes"`
	AvgDistanceKm  float64 `json:"avg_distance_km"`
	MaxSpeedKmh    float64 `json:"max_speed_kmh"`
	AvgHeartRate   int     `json:"avg_heart_rate"`
	LoadScore      float64 `json:"load_score"`
	Status         string  `json:"status"`
	Recommendation string  `json:"recommendation"`
}

// FactorCount is one entry in the cohort's top-factor list.
type FactorCount struct {
	Factor           string `json:"factor"`
	AffectedAthletes int    `json:"affected_athletes"`
}

// CohortSummary aggregates risk assessments across a squad.
type CohortSummary struct {
	TotalAthletes    int            `json:"total_athletes"`
	AverageRiskScore float64        `json:"average_risk_score"`
	RiskDistribution map[string]int `json:"risk_distribution"`
	CriticalCount    int            `json:"athletes_at_critical_risk"`
	HighCount        int            `json:"athletes_at_high_risk"`
	TopRiskFactors   []FactorCount  `json:"top_risk_factors"`
	HealthStatus     string         `json:"squad_health_status"` // ALERT, CAUTION or GOOD
}

// Insight entry types for the three recommendation buckets.
type RecoveryInsight struct {
	Name     string `json:"athlete_name"`
	Reason   string `json:"reason"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

type PreventionInsight struct {
	Name       string `json:"athlete_name"`
	RiskFactor string `json:"risk_factor"`
	Prevention string `json:"prevention"`
	Priority   string `json:"priority"`
}

type WorkloadInsight struct {
	Name           string `json:"athlete_name"`
	CurrentLoad    string `json:"current_load"`
	Recommendation string `json:"recommendation"`
	TargetMinutes  int    `json:"target_minutes"`
}

// InsightSummary closes out an insight report.
type InsightSummary struct {
	TotalAnalyzed      int     `json:"total_athletes_analyzed"`
	NeedingRecovery    int     `json:"athletes_needing_recovery"`
	OptimalLoad        int     `json:"athletes_optimal_load"`
	RecoveryPercentage float64 `json:"recovery_percentage"`
	PeriodDays         int     `json:"period_days"`
}

// InsightReport buckets per-athlete recommendations by category. An athlete
// can appear in any combination of buckets; they are independent.
type InsightReport struct {
	Recovery   []RecoveryInsight   `json:"recovery_recommendations"`
	Prevention []PreventionInsight `json:"injury_prevention"`
	Workload   []WorkloadInsight   `json:"workload_optimization"`
	Summary    InsightSummary      `json:"summary"`
}
