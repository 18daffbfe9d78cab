// Package scoring implements the training-load and injury-risk engines.
// Every function here is pure: no I/O, no logging, no shared state, safe for
// concurrent use. Callers fetch aggregates first, then score.
package scoring

import "math"

// Sustained capacity used to normalize load: 90 minutes per day counts as
// 100% load.
const dailyCapacityMinutes = 90.0

// Load status levels, checked top-down.
const (
	LoadWarning  = "warning"
	LoadOptimal  = "optimal"
	LoadModerate = "moderate"
	LoadLow      = "low"
)

// LoadScore converts total training minutes over a window into a 0-100 load
// score. days must be positive; that is a caller contract enforced at the
// HTTP boundary, and non-positive values are undefined here.
func LoadScore(totalMinutes, days int) float64 {
	score := float64(totalMinutes) / (float64(days) * dailyCapacityMinutes) * 100
	return round1(math.Min(100, math.Max(0, score)))
}

// LoadStatus maps a load score to its status level and recommendation.
func LoadStatus(score float64) (status, recommendation string) {
	switch {
	case score > 85:
		return LoadWarning, "High load - Consider rest day"
	case score > 70:
		return LoadOptimal, "Optimal training load"
	case score > 50:
		return LoadModerate, "Moderate load - Can increase intensity"
	default:
		return LoadLow, "Low load - Increase training volume"
	}
}

// round1 rounds to one decimal, matching the wire format clients consume.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
