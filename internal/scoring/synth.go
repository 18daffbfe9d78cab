package scoring

import (
	"fmt"
	"math/rand"
)

// SynthAthlete is a generated athlete with a full set of risk inputs,
// used for demo predictions and for seeding a development stack.
type SynthAthlete struct {
	ID       int64
	Name     string
	Position string
	Age      int

	Inputs RiskInputs

	// Extra telemetry for seeding session events.
	SessionsThisWeek int
	AvgHeartRate     int
	MaxHeartRate     int
	TotalDistanceKm  float64
	SleepQualityAvg  float64
}

var (
	synthPositions  = []string{"Goalkeeper", "Defender", "Midfielder", "Forward"}
	synthFirstNames = []string{
		"Marcus", "James", "Carlos", "Mohamed", "Kevin", "Sergio",
		"David", "Alex", "Bruno", "Luka", "Toni", "Joshua",
		"Erling", "Kylian", "Vinicius", "Jude", "Phil", "Mason",
		"Bukayo", "Jamal",
	}
	synthLastNames = []string{
		"Silva", "Rodriguez", "Martinez", "Williams", "Jones",
		"Garcia", "Johnson", "Brown", "Miller", "Davis",
		"Fernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
		"Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
)

// GenerateSquad produces count athletes with realistic training metrics.
// The rng is injected so demos can be reproducible.
func GenerateSquad(rng *rand.Rand, count int) []SynthAthlete {
	squad := make([]SynthAthlete, 0, count)
	for i := 0; i < count; i++ {
		age := 18 + rng.Intn(19)
		weeklyMinutes := 300 + rng.Intn(401)
		intensity := float64(20 + rng.Intn(36))
		restDays := rng.Intn(4)
		injuries := rng.Intn(5)
		fatigue := 1 + rng.Intn(10)
		sprints := 20 + rng.Intn(61)

		// ~30% of athletes are within a month of their last injury.
		daysSinceInjury := 30 + rng.Intn(471)
		if rng.Float64() <= 0.3 {
			daysSinceInjury = 7 + rng.Intn(23)
		}

		squad = append(squad, SynthAthlete{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("%s %s", synthFirstNames[rng.Intn(len(synthFirstNames))], synthLastNames[rng.Intn(len(synthLastNames))]),
			Position: synthPositions[rng.Intn(len(synthPositions))],
			Age:      age,
			Inputs: RiskInputs{
				WeeklyMinutes:    &weeklyMinutes,
				HighIntensityPct: &intensity,
				RestDays:         &restDays,
				Age:              &age,
				PreviousInjuries: &injuries,
				DaysSinceInjury:  &daysSinceInjury,
				FatigueScore:     &fatigue,
				WeeklySprints:    &sprints,
			},
			SessionsThisWeek: 3 + rng.Intn(5),
			AvgHeartRate:     140 + rng.Intn(36),
			MaxHeartRate:     170 + rng.Intn(31),
			TotalDistanceKm:  25 + rng.Float64()*45,
			SleepQualityAvg:  5 + rng.Float64()*4,
		})
	}
	return squad
}
