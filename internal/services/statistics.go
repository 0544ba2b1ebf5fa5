package services

import (
	"sort"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

// Recalculate derives the rolling averages from the cycle history. Regular
// cycles only; with zero samples for a metric the prior value is retained,
// falling back to the system defaults, so callers always run with a best
// estimate instead of an undefined average.
func Recalculate(cycles []models.Cycle, prior models.UserStatistics) models.UserStatistics {
	regular := RegularCyclesByStart(cycles)

	periodLengths := make([]int, 0, len(regular))
	for _, cycle := range regular {
		if length := cycle.PeriodLengthDays(); length > 0 {
			periodLengths = append(periodLengths, length)
		}
	}

	cycleLengths := make([]int, 0, len(regular))
	for index := 1; index < len(regular); index++ {
		cycleLengths = append(cycleLengths, DaysBetween(regular[index-1].StartDate, regular[index].StartDate))
	}

	return models.UserStatistics{
		UserID:          prior.UserID,
		AvgCycleLength:  averageOrFallback(cycleLengths, prior.AvgCycleLength, models.DefaultCycleLength),
		AvgPeriodLength: averageOrFallback(periodLengths, prior.AvgPeriodLength, models.DefaultPeriodLength),
	}
}

// RegularCyclesByStart filters to regular cycles sorted ascending by start
// date; the stable sort keeps insertion order for same-day starts.
func RegularCyclesByStart(cycles []models.Cycle) []models.Cycle {
	regular := make([]models.Cycle, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.IsRegular() {
			regular = append(regular, cycle)
		}
	}
	sort.SliceStable(regular, func(i, j int) bool {
		return regular[i].StartDate.Before(regular[j].StartDate)
	})
	return regular
}

func averageOrFallback(samples []int, prior int, fallback int) int {
	if len(samples) == 0 {
		if prior > 0 {
			return prior
		}
		return fallback
	}

	var total int
	for _, sample := range samples {
		total += sample
	}
	return int(float64(total)/float64(len(samples)) + 0.5)
}
