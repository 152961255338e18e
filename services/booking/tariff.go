package booking

import (
	"math"
	"time"

	"riverwood/models"
)

// Quote computes the total price for a stay of the given number of nights
// starting at start. Each night is priced at the type's base rate times the
// multiplier of the season covering that night (1.0 when no season matches);
// the total is rounded to cents. Pure and deterministic.
func Quote(ct models.CabinType, start time.Time, nights int) float64 {
	if nights <= 0 {
		return 0
	}

	total := 0.0
	for i := 0; i < nights; i++ {
		night := start.AddDate(0, 0, i)
		total += ct.NightlyRate * seasonMultiplier(ct.Seasons, night)
	}
	return math.Round(total*100) / 100
}

// seasonMultiplier returns the multiplier of the first season whose
// [Start, End) range covers the night, or 1.0 when none does.
func seasonMultiplier(seasons []models.RateSeason, night time.Time) float64 {
	for _, s := range seasons {
		if !night.Before(s.Start) && night.Before(s.End) {
			return s.Multiplier
		}
	}
	return 1.0
}
