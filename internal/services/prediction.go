package services

import (
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

const (
	// DefaultPredictionHorizon bounds the forward projection to six cycles.
	DefaultPredictionHorizon = 6

	// LutealPhaseDays places ovulation a fixed 14 days before the projected
	// period start, independent of the average cycle length.
	LutealPhaseDays = 14

	fertileDaysBeforeOvulation = 4
	fertileDaysAfterOvulation  = 1
)

// PredictionWindow holds the projected day sets for the lookahead horizon.
// Ephemeral: recomputed on every read, never persisted.
type PredictionWindow struct {
	PeriodDays    []time.Time
	OvulationDays []time.Time
	FertileDays   []time.Time
}

// Predict projects future period, ovulation and fertile days for the given
// number of cycles ahead of the most recent regular cycle's start. Without a
// regular anchor or a positive average cycle length every set stays empty;
// the engine never guesses from zero data.
func Predict(cycles []models.Cycle, stats models.UserStatistics, today time.Time, horizonCycles int) PredictionWindow {
	window := PredictionWindow{
		PeriodDays:    []time.Time{},
		OvulationDays: []time.Time{},
		FertileDays:   []time.Time{},
	}

	anchorCycle, found := LatestRegularCycle(cycles)
	if !found || stats.AvgCycleLength <= 0 {
		return window
	}
	if horizonCycles <= 0 {
		horizonCycles = DefaultPredictionHorizon
	}

	anchor := DateOnly(anchorCycle.StartDate)
	logged := LoggedPeriodDays(cycles)
	predicted := make(map[string]bool)

	for index := 1; index <= horizonCycles; index++ {
		nextStart := anchor.AddDate(0, 0, stats.AvgCycleLength*index)

		for offset := 0; offset < stats.AvgPeriodLength; offset++ {
			day := nextStart.AddDate(0, 0, offset)
			key := day.Format(isoDate)
			if logged[key] || predicted[key] {
				continue
			}
			predicted[key] = true
			window.PeriodDays = append(window.PeriodDays, day)
		}

		ovulationDay := nextStart.AddDate(0, 0, -LutealPhaseDays)
		window.OvulationDays = append(window.OvulationDays, ovulationDay)
		for offset := -fertileDaysBeforeOvulation; offset <= fertileDaysAfterOvulation; offset++ {
			window.FertileDays = append(window.FertileDays, ovulationDay.AddDate(0, 0, offset))
		}
	}

	return window
}

// DaysUntilNextPeriod counts whole days from today to the first projected
// period start. Negative once the prediction has lapsed; the caller decides
// how to present that. The second return is false when no prediction exists.
func DaysUntilNextPeriod(cycles []models.Cycle, stats models.UserStatistics, today time.Time) (int, bool) {
	anchorCycle, found := LatestRegularCycle(cycles)
	if !found || stats.AvgCycleLength <= 0 {
		return 0, false
	}
	nextStart := DateOnly(anchorCycle.StartDate).AddDate(0, 0, stats.AvgCycleLength)
	return DaysBetween(today, nextStart), true
}

// LatestRegularCycle picks the prediction anchor: the regular cycle with the
// greatest start date.
func LatestRegularCycle(cycles []models.Cycle) (models.Cycle, bool) {
	regular := RegularCyclesByStart(cycles)
	if len(regular) == 0 {
		return models.Cycle{}, false
	}
	return regular[len(regular)-1], true
}

// LoggedPeriodDays collects confirmed bleeding days keyed by ISO date: every
// day of a closed cycle's interval and the start day of an open one. Both
// kinds count; irregular bleeding is still logged data that predictions must
// not shadow.
func LoggedPeriodDays(cycles []models.Cycle) map[string]bool {
	days := make(map[string]bool)
	for _, cycle := range cycles {
		start := DateOnly(cycle.StartDate)
		end := start
		if cycle.EndDate != nil {
			end = DateOnly(*cycle.EndDate)
		}
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			days[day.Format(isoDate)] = true
		}
	}
	return days
}
