package services

import (
	"sort"
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

const (
	SnapshotRecentCycleCount = 5
	SnapshotRecentEventCount = 10
)

// CycleSummary is one completed cycle in the snapshot. CycleLength is the day
// count back to the previous older regular start, 0 for the oldest entry.
type CycleSummary struct {
	ID           string `json:"id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PeriodLength int    `json:"period_length"`
	CycleLength  int    `json:"cycle_length"`
}

// EventRow is one active symptom flag on one day.
type EventRow struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

// Snapshot is the flat, read-only summary handed to UI and assistant
// consumers. All dates are ISO calendar-date strings without a time component.
type Snapshot struct {
	HasData                bool           `json:"has_data"`
	IsPeriodToday          bool           `json:"is_period_today"`
	IsPredictedPeriodToday bool           `json:"is_predicted_period_today"`
	IsFertileToday         bool           `json:"is_fertile_today"`
	IsOvulationToday       bool           `json:"is_ovulation_today"`
	CurrentCycleDay        *int           `json:"current_cycle_day,omitempty"`
	DaysUntilNextPeriod    *int           `json:"days_until_next_period,omitempty"`
	LastPeriodStart        string         `json:"last_period_start,omitempty"`
	LastPeriodEnd          string         `json:"last_period_end,omitempty"`
	AvgCycleLength         int            `json:"avg_cycle_length"`
	AvgPeriodLength        int            `json:"avg_period_length"`
	RecentCycles           []CycleSummary `json:"recent_cycles"`
	RecentEvents           []EventRow     `json:"recent_events"`
}

// BuildSnapshot assembles the point-in-time summary. With no cycle data at
// all the snapshot carries HasData=false so consumers can tell "never
// tracked" apart from "currently in no special window".
func BuildSnapshot(cycles []models.Cycle, events []models.DailyEvent, stats models.UserStatistics, today time.Time, horizonCycles int) Snapshot {
	snapshot := Snapshot{
		AvgCycleLength:  stats.AvgCycleLength,
		AvgPeriodLength: stats.AvgPeriodLength,
		RecentCycles:    []CycleSummary{},
		RecentEvents:    flattenRecentEvents(events, SnapshotRecentEventCount),
	}

	if len(cycles) == 0 {
		return snapshot
	}
	snapshot.HasData = true

	today = DateOnly(today)
	todayKey := today.Format(isoDate)

	snapshot.IsPeriodToday = LoggedPeriodDays(cycles)[todayKey]

	window := Predict(cycles, stats, today, horizonCycles)
	snapshot.IsPredictedPeriodToday = containsDay(window.PeriodDays, todayKey)
	snapshot.IsFertileToday = containsDay(window.FertileDays, todayKey)
	snapshot.IsOvulationToday = containsDay(window.OvulationDays, todayKey)

	if until, predictable := DaysUntilNextPeriod(cycles, stats, today); predictable {
		snapshot.DaysUntilNextPeriod = &until
	}

	if openCycle, found := openRegularCycle(cycles); found && !today.Before(DateOnly(openCycle.StartDate)) {
		cycleDay := DaysBetween(openCycle.StartDate, today) + 1
		snapshot.CurrentCycleDay = &cycleDay
	}

	if latest, found := LatestRegularCycle(cycles); found {
		snapshot.LastPeriodStart = FormatISODate(DateOnly(latest.StartDate))
		if latest.EndDate != nil {
			snapshot.LastPeriodEnd = FormatISODate(DateOnly(*latest.EndDate))
		}
	}

	snapshot.RecentCycles = recentCompletedCycles(cycles, SnapshotRecentCycleCount)

	return snapshot
}

// recentCompletedCycles summarizes the newest completed regular cycles, each
// with its period length and the start-to-start distance to its predecessor.
func recentCompletedCycles(cycles []models.Cycle, limit int) []CycleSummary {
	regular := RegularCyclesByStart(cycles)

	summaries := make([]CycleSummary, 0, limit)
	for index := len(regular) - 1; index >= 0 && len(summaries) < limit; index-- {
		cycle := regular[index]
		if cycle.EndDate == nil {
			continue
		}

		summary := CycleSummary{
			ID:           cycle.ID,
			StartDate:    FormatISODate(DateOnly(cycle.StartDate)),
			EndDate:      FormatISODate(DateOnly(*cycle.EndDate)),
			PeriodLength: cycle.PeriodLengthDays(),
		}
		if index > 0 {
			summary.CycleLength = DaysBetween(regular[index-1].StartDate, cycle.StartDate)
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

// flattenRecentEvents turns day records into {date, type} rows, newest day
// first, one row per active flag, capped at limit rows.
func flattenRecentEvents(events []models.DailyEvent, limit int) []EventRow {
	sorted := make([]models.DailyEvent, 0, len(events))
	sorted = append(sorted, events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	rows := make([]EventRow, 0, limit)
	for _, event := range sorted {
		date := FormatISODate(DateOnly(event.Date))
		for _, name := range event.ActiveFlagNames() {
			if len(rows) == limit {
				return rows
			}
			rows = append(rows, EventRow{Date: date, Type: name})
		}
	}
	return rows
}

func openRegularCycle(cycles []models.Cycle) (models.Cycle, bool) {
	regular := RegularCyclesByStart(cycles)
	for index := len(regular) - 1; index >= 0; index-- {
		if regular[index].IsOpen() {
			return regular[index], true
		}
	}
	return models.Cycle{}, false
}

func containsDay(days []time.Time, key string) bool {
	for _, day := range days {
		if day.Format(isoDate) == key {
			return true
		}
	}
	return false
}
