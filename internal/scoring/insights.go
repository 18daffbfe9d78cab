package scoring

import "github.com/teampulse/analytics-api/internal/models"

// Insight thresholds over the evaluation window.
const (
	recoveryVolumeMinutes   = 1200
	recoveryHeartRate       = 165
	preventionAgeThreshold  = 30
	preventionVolumeMinutes = 1000
	workloadFloorMinutes    = 400
	workloadTargetMinutes   = 600
)

// BuildInsights classifies each athlete's window aggregates into up to three
// independent recommendation buckets. Recovery is exclusive per athlete
// (volume beats heart rate, everyone else counts as optimal load); the
// prevention and workload buckets are evaluated independently of it.
func BuildInsights(metrics []models.AthleteMetrics, days int) models.InsightReport {
	report := models.InsightReport{
		Recovery:   []models.RecoveryInsight{},
		Prevention: []models.PreventionInsight{},
		Workload:   []models.WorkloadInsight{},
	}

	needsRecovery := 0
	optimalLoad := 0
	for _, m := range metrics {
		switch {
		case m.TotalDurationMinutes > recoveryVolumeMinutes:
			needsRecovery++
			report.Recovery = append(report.Recovery, models.RecoveryInsight{
				Name:     m.Name,
				Reason:   "High training volume detected",
				Action:   "Schedule 2 rest days this week",
				Priority: "high",
			})
		case m.AvgHeartRate > recoveryHeartRate:
			report.Recovery = append(report.Recovery, models.RecoveryInsight{
				Name:     m.Name,
				Reason:   "Elevated average heart rate",
				Action:   "Focus on low-intensity recovery sessions",
				Priority: "medium",
			})
		default:
			optimalLoad++
		}

		if m.Age != nil && *m.Age > preventionAgeThreshold && m.TotalDurationMinutes > preventionVolumeMinutes {
			report.Prevention = append(report.Prevention, models.PreventionInsight{
				Name:       m.Name,
				RiskFactor: "Age + High workload combination",
				Prevention: "Implement additional stretching and mobility work",
				Priority:   "high",
			})
		}

		if m.TotalDurationMinutes < workloadFloorMinutes {
			report.Workload = append(report.Workload, models.WorkloadInsight{
				Name:           m.Name,
				CurrentLoad:    "Below optimal",
				Recommendation: "Gradually increase training volume by 10-15%",
				TargetMinutes:  workloadTargetMinutes,
			})
		}
	}

	report.Summary = models.InsightSummary{
		TotalAnalyzed:   len(metrics),
		NeedingRecovery: needsRecovery,
		OptimalLoad:     optimalLoad,
		PeriodDays:      days,
	}
	if len(metrics) > 0 {
		report.Summary.RecoveryPercentage = round1(float64(needsRecovery) / float64(len(metrics)) * 100)
	}
	return report
}
