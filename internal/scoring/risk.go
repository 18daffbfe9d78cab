package scoring

import (
	"fmt"
	"math"

	"github.com/teampulse/analytics-api/internal/models"
)

// Risk factor thresholds. Tuned against the historical rule set the medical
// staff signed off on; changing one changes the wire output for every client.
const (
	weeklyMinutesHigh = 600
	intensityPctHigh  = 40.0
	minRestDays       = 2
	ageRiskThreshold  = 30
	recentInjuryDays  = 30
	fatigueHigh       = 7
	sprintCountHigh   = 50
)

// Risk levels, ordered from worst to best.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskModerate = "moderate"
	RiskLow      = "low"
)

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// RiskInputs are the per-athlete inputs to the injury-risk engine. Nil
// pointers mean "not reported" and take the population-typical defaults
// below, so sparse records always score rather than fail.
type RiskInputs struct {
	WeeklyMinutes    *int     // default 400
	HighIntensityPct *float64 // default 30
	RestDays         *int     // default 2
	Age              *int     // default 25
	PreviousInjuries *int     // default 0
	DaysSinceInjury  *int     // default 365
	FatigueScore     *int     // default 5, scale 1-10
	WeeklySprints    *int     // default 30
}

// riskDefaults are applied for unreported fields. Availability over
// precision: a defaulted record scores 0 across every factor.
type normalizedInputs struct {
	weeklyMinutes    int
	highIntensityPct float64
	restDays         int
	age              int
	previousInjuries int
	daysSinceInjury  int
	fatigueScore     int
	weeklySprints    int
}

func (in RiskInputs) normalize() normalizedInputs {
	n := normalizedInputs{
		weeklyMinutes:    400,
		highIntensityPct: 30,
		restDays:         2,
		age:              25,
		previousInjuries: 0,
		daysSinceInjury:  365,
		fatigueScore:     5,
		weeklySprints:    30,
	}
	if in.WeeklyMinutes != nil {
		n.weeklyMinutes = *in.WeeklyMinutes
	}
	if in.HighIntensityPct != nil {
		n.highIntensityPct = *in.HighIntensityPct
	}
	if in.RestDays != nil {
		n.restDays = *in.RestDays
	}
	if in.Age != nil {
		n.age = *in.Age
	}
	if in.PreviousInjuries != nil {
		n.previousInjuries = *in.PreviousInjuries
	}
	if in.DaysSinceInjury != nil {
		n.daysSinceInjury = *in.DaysSinceInjury
	}
	if in.FatigueScore != nil {
		n.fatigueScore = *in.FatigueScore
	}
	if in.WeeklySprints != nil {
		n.weeklySprints = *in.WeeklySprints
	}
	return n
}

// riskRule is one entry in the ordered rule list. trigger decides whether the
// factor fires, contribution returns the (uncapped-by-caller) score amount,
// and severity tags the factor for the UI. Rules are evaluated in slice
// order so the factor list in the output is deterministic.
type riskRule struct {
	factor       string
	trigger      func(n normalizedInputs) bool
	contribution func(n normalizedInputs) float64
	description  func(n normalizedInputs) string
	severity     func(n normalizedInputs, contribution float64) string
}

var riskRules = []riskRule{
	{
		factor:  "High Training Load",
		trigger: func(n normalizedInputs) bool { return n.weeklyMinutes > weeklyMinutesHigh },
		contribution: func(n normalizedInputs) float64 {
			return math.Min(25, float64(n.weeklyMinutes-weeklyMinutesHigh)/10)
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("Training %d min/week exceeds safe threshold (%d min)", n.weeklyMinutes, weeklyMinutesHigh)
		},
		severity: func(n normalizedInputs, c float64) string {
			if c > 15 {
				return SeverityHigh
			}
			return SeverityMedium
		},
	},
	{
		factor:  "High Intensity Overload",
		trigger: func(n normalizedInputs) bool { return n.highIntensityPct > intensityPctHigh },
		contribution: func(n normalizedInputs) float64 {
			return math.Min(20, (n.highIntensityPct-intensityPctHigh)*0.8)
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("%.0f%% high-intensity training (recommended: <%.0f%%)", n.highIntensityPct, intensityPctHigh)
		},
		severity: func(n normalizedInputs, c float64) string {
			if c > 12 {
				return SeverityHigh
			}
			return SeverityMedium
		},
	},
	{
		factor:  "Insufficient Recovery",
		trigger: func(n normalizedInputs) bool { return n.restDays < minRestDays },
		contribution: func(n normalizedInputs) float64 {
			return float64(minRestDays-n.restDays) * 10
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("Only %d rest days last week (minimum: %d)", n.restDays, minRestDays)
		},
		severity: func(n normalizedInputs, c float64) string {
			if n.restDays == 0 {
				return SeverityHigh
			}
			return SeverityMedium
		},
	},
	{
		factor:  "Age-Related Risk",
		trigger: func(n normalizedInputs) bool { return n.age > ageRiskThreshold },
		contribution: func(n normalizedInputs) float64 {
			return math.Min(15, float64(n.age-ageRiskThreshold)*2)
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("Athletes over %d require more careful load management", ageRiskThreshold)
		},
		severity: func(n normalizedInputs, c float64) string { return SeverityMedium },
	},
	{
		factor:  "Injury History",
		trigger: func(n normalizedInputs) bool { return n.previousInjuries > 0 },
		contribution: func(n normalizedInputs) float64 {
			return math.Min(15, float64(n.previousInjuries)*4)
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("%d previous injuries on record", n.previousInjuries)
		},
		severity: func(n normalizedInputs, c float64) string {
			if n.previousInjuries >= 3 {
				return SeverityHigh
			}
			return SeverityMedium
		},
	},
	{
		factor:  "Recent Injury",
		trigger: func(n normalizedInputs) bool { return n.daysSinceInjury < recentInjuryDays },
		contribution: func(n normalizedInputs) float64 {
			return math.Max(0, float64(recentInjuryDays-n.daysSinceInjury)*0.5)
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("Only %d days since last injury - elevated re-injury risk", n.daysSinceInjury)
		},
		severity: func(n normalizedInputs, c float64) string { return SeverityHigh },
	},
	{
		factor:  "Accumulated Fatigue",
		trigger: func(n normalizedInputs) bool { return n.fatigueScore > fatigueHigh },
		contribution: func(n normalizedInputs) float64 {
			return float64(n.fatigueScore-fatigueHigh) * 5
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("High fatigue score (%d/10) - muscles not fully recovered", n.fatigueScore)
		},
		severity: func(n normalizedInputs, c float64) string {
			if n.fatigueScore >= 9 {
				return SeverityHigh
			}
			return SeverityMedium
		},
	},
	{
		factor:  "Sprint Overload",
		trigger: func(n normalizedInputs) bool { return n.weeklySprints > sprintCountHigh },
		contribution: func(n normalizedInputs) float64 {
			return math.Min(10, float64(n.weeklySprints-sprintCountHigh)*0.3)
		},
		description: func(n normalizedInputs) string {
			return fmt.Sprintf("%d sprints this week (threshold: %d)", n.weeklySprints, sprintCountHigh)
		},
		severity: func(n normalizedInputs, c float64) string { return SeverityMedium },
	},
}

// RiskResult is the identity-agnostic output of EvaluateRisk; callers attach
// athlete identity before serializing.
type RiskResult struct {
	RiskScore      float64
	RiskLevel      string
	Recommendation string
	RiskFactors    []models.RiskFactor
	Metrics        models.MetricsAnalyzed
}

// EvaluateRisk runs the ordered rule list over one athlete's inputs and
// returns the accumulated risk score clamped to [0, 100], the mapped level
// and recommendation, and the triggered factors in evaluation order.
func EvaluateRisk(in RiskInputs) RiskResult {
	n := in.normalize()

	var total float64
	factors := make([]models.RiskFactor, 0, len(riskRules))
	for _, rule := range riskRules {
		if !rule.trigger(n) {
			continue
		}
		c := rule.contribution(n)
		total += c
		factors = append(factors, models.RiskFactor{
			Factor:       rule.factor,
			Description:  rule.description(n),
			Contribution: round1(c),
			Severity:     rule.severity(n, c),
		})
	}

	total = math.Min(100, total)
	level, recommendation := riskLevel(total)

	return RiskResult{
		RiskScore:      round1(total),
		RiskLevel:      level,
		Recommendation: recommendation,
		RiskFactors:    factors,
		Metrics: models.MetricsAnalyzed{
			WeeklyTrainingMinutes: n.weeklyMinutes,
			HighIntensityPct:      n.highIntensityPct,
			RestDays:              n.restDays,
			FatigueScore:          n.fatigueScore,
			SprintCount:           n.weeklySprints,
			Age:                   n.age,
		},
	}
}

func riskLevel(score float64) (level, recommendation string) {
	switch {
	case score >= 70:
		return RiskCritical, "IMMEDIATE REST REQUIRED - High probability of injury within 7 days"
	case score >= 50:
		return RiskHigh, "Reduce training intensity by 40% and add extra rest day"
	case score >= 30:
		return RiskModerate, "Monitor closely and consider reducing high-intensity work"
	default:
		return RiskLow, "Continue current training plan - athlete is in good condition"
	}
}
