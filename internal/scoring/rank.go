package scoring

import (
	"sort"

	"github.com/teampulse/analytics-api/internal/models"
)

// Squad health statuses derived from the risk histogram.
const (
	StatusAlert   = "ALERT"
	StatusCaution = "CAUTION"
	StatusGood    = "GOOD"
)

// cautionHighCount: more than this many high-risk athletes downgrades the
// squad from GOOD to CAUTION.
const cautionHighCount = 2

const topFactorLimit = 5

// RankByRisk sorts assessments by risk score descending, in place. The sort
// is stable: athletes with equal scores keep their input order.
func RankByRisk(results []models.RiskAssessment) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RiskScore > results[j].RiskScore
	})
}

// RankByLoad sorts load assessments by load score descending, in place,
// with the same stability guarantee.
func RankByLoad(results []models.LoadAssessment) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].LoadScore > results[j].LoadScore
	})
}

// Summarize builds cohort-level statistics from per-athlete assessments.
// An empty cohort yields zero counts and status GOOD, never an error.
func Summarize(results []models.RiskAssessment) models.CohortSummary {
	summary := models.CohortSummary{
		TotalAthletes: len(results),
		RiskDistribution: map[string]int{
			RiskCritical: 0,
			RiskHigh:     0,
			RiskModerate: 0,
			RiskLow:      0,
		},
	}
	if len(results) == 0 {
		summary.HealthStatus = StatusGood
		summary.TopRiskFactors = []models.FactorCount{}
		return summary
	}

	var total float64
	factorCounts := make(map[string]int)
	factorOrder := make([]string, 0)
	for _, r := range results {
		summary.RiskDistribution[r.RiskLevel]++
		total += r.RiskScore
		for _, f := range r.RiskFactors {
			if _, seen := factorCounts[f.Factor]; !seen {
				factorOrder = append(factorOrder, f.Factor)
			}
			factorCounts[f.Factor]++
		}
	}

	summary.AverageRiskScore = round1(total / float64(len(results)))
	summary.CriticalCount = summary.RiskDistribution[RiskCritical]
	summary.HighCount = summary.RiskDistribution[RiskHigh]

	// Rank factors by frequency; ties keep first-encountered order, which
	// sort.SliceStable preserves since factorOrder is encounter-ordered.
	sort.SliceStable(factorOrder, func(i, j int) bool {
		return factorCounts[factorOrder[i]] > factorCounts[factorOrder[j]]
	})
	if len(factorOrder) > topFactorLimit {
		factorOrder = factorOrder[:topFactorLimit]
	}
	summary.TopRiskFactors = make([]models.FactorCount, 0, len(factorOrder))
	for _, name := range factorOrder {
		summary.TopRiskFactors = append(summary.TopRiskFactors, models.FactorCount{
			Factor:           name,
			AffectedAthletes: factorCounts[name],
		})
	}

	switch {
	case summary.CriticalCount > 0:
		summary.HealthStatus = StatusAlert
	case summary.HighCount > cautionHighCount:
		summary.HealthStatus = StatusCaution
	default:
		summary.HealthStatus = StatusGood
	}
	return summary
}
