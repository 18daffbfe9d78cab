package models

type CreateAthleteRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Position string `json:"position" validate:"required,max=50"`
	Team     string `json:"team,omitempty" validate:"max=100"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,gte=14,lte=60"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type UpdateAthleteRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Position *string `json:"position,omitempty" validate:"omitempty,max=50"`
	Team     *string `json:"team,omitempty" validate:"omitempty,max=100"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,gte=14,lte=60"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type UpdateWellnessRequest struct {
	RestDaysLastWeek *int     `json:"rest_days_last_week,omitempty" validate:"omitempty,gte=0,lte=7"`
	FatigueScore     *int     `json:"fatigue_score,omitempty" validate:"omitempty,gte=1,lte=10"`
	HighIntensityPct *float64 `json:"high_intensity_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	PreviousInjuries *int     `json:"previous_injuries,omitempty" validate:"omitempty,gte=0"`
	DaysSinceInjury  *int     `json:"days_since_injury,omitempty" validate:"omitempty,gte=0"`
}

type RegisterSourceRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type RegisterSourceResponse struct {
	SourceID string `json:"source_id"`
	Token    string `json:"token"`
}

// TrainingLoadResponse wraps the ranked load assessments for a window.
type TrainingLoadResponse struct {
	PeriodDays    int              `json:"period_days"`
	TotalAthletes int              `json:"total_athletes"`
	Athletes      []LoadAssessment `json:"athletes"`
}

// InjuryRiskResponse wraps ranked risk assessments plus the cohort summary.
type InjuryRiskResponse struct {
	TotalAthletes int              `json:"total_athletes"`
	Summary       CohortSummary    `json:"summary"`
	Athletes      []RiskAssessment `json:"athletes"`
}
