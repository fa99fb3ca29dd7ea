package services

import (
	"math"
	"time"

	"yogurt-cleaning/internal/models"
)

// ComputeTotalDuration folds every bundle through ResolveDuration against
// the order's cleaning object, then adds the flat duration of each
// standalone service. Hours, unrounded.
func ComputeTotalDuration(object models.CleaningObject, bundles []models.Bundle, services []models.CleaningService) float64 {
	var total float64
	for _, b := range bundles {
		total = ResolveDuration(b, object, total)
	}
	for _, s := range services {
		total += s.Duration
	}
	return total
}

// ComputeTotalPrice is the price counterpart of ComputeTotalDuration.
func ComputeTotalPrice(object models.CleaningObject, bundles []models.Bundle, services []models.CleaningService) float64 {
	var total float64
	for _, b := range bundles {
		total = ResolvePrice(b, object, total)
	}
	for _, s := range services {
		total += s.Price
	}
	return total
}

// ComputeCrewSize derives how many cleaners are needed so the job ends by
// workdayEndHour (clock-hour granularity). A single cleaner is enough
// whenever the total fits the remaining window; otherwise the crew grows
// until the evenly split workload does.
func ComputeCrewSize(totalDuration float64, startTime time.Time, workdayEndHour int) int {
	maxWindow := float64(workdayEndHour - startTime.Hour())
	if totalDuration > maxWindow {
		return int(math.Ceil(totalDuration / maxWindow))
	}
	return 1
}

// ComputeEndTime models the crew working in parallel: elapsed time is the
// total workload divided evenly across the crew.
func ComputeEndTime(startTime time.Time, totalDuration float64, cleanersCount int) time.Time {
	hours := totalDuration / float64(cleanersCount)
	return startTime.Add(time.Duration(hours * float64(time.Hour)))
}
