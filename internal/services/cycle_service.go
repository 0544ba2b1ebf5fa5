package services

import (
	"errors"
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
	"github.com/google/uuid"
)

var (
	ErrCycleNotFound     = errors.New("cycle not found")
	ErrInvalidSeedValues = errors.New("invalid seed values")
)

// HistoryStore is the per-user cycle document contract. LoadHistory returns
// an empty list for first-time users; I/O failures surface as errors and are
// never treated as "no data". Save persists the whole list plus statistics as
// one atomic unit.
type HistoryStore interface {
	LoadHistory(userID uint) ([]models.Cycle, models.UserStatistics, error)
	Save(userID uint, cycles []models.Cycle, stats models.UserStatistics) error
}

// CycleService owns the write path: every mutation loads the history,
// validates the change, recomputes the rolling averages and saves the result
// back as one document.
type CycleService struct {
	history HistoryStore
}

func NewCycleService(history HistoryStore) *CycleService {
	return &CycleService{history: history}
}

type CycleWriteResult struct {
	Cycle models.Cycle
	Stats models.UserStatistics

	// ShortCycleWarning flags a start fewer than ShortCycleGapDays after the
	// previous regular cycle. Advisory only; the write has already happened.
	ShortCycleWarning bool
}

// LogCycleStart opens a new regular cycle anchored at the given day.
func (service *CycleService) LogCycleStart(userID uint, start time.Time) (CycleWriteResult, error) {
	cycles, stats, err := service.history.LoadHistory(userID)
	if err != nil {
		return CycleWriteResult{}, err
	}

	start = DateOnly(start)
	if err := ValidateNewCycle(CycleDraft{Start: start}, cycles, stats.AvgPeriodLength); err != nil {
		return CycleWriteResult{}, err
	}

	warning := false
	if last, found := LatestRegularCycle(cycles); found {
		warning = IsSuspiciouslyShort(start, last)
	}

	cycle := models.Cycle{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartDate: start,
		Kind:      models.KindRegular,
	}
	cycles = append(cycles, cycle)
	stats = Recalculate(cycles, stats)

	if err := service.history.Save(userID, cycles, stats); err != nil {
		return CycleWriteResult{}, err
	}
	return CycleWriteResult{Cycle: cycle, Stats: stats, ShortCycleWarning: warning}, nil
}

// LogCycleEnd sets a cycle's end date, or clears it when end is nil
// (toggle-off). The edited cycle is re-validated against the rest of the
// history before anything is persisted.
func (service *CycleService) LogCycleEnd(userID uint, cycleID string, end *time.Time) (CycleWriteResult, error) {
	cycles, stats, err := service.history.LoadHistory(userID)
	if err != nil {
		return CycleWriteResult{}, err
	}

	index := indexOfCycle(cycles, cycleID)
	if index < 0 {
		return CycleWriteResult{}, ErrCycleNotFound
	}
	cycle := cycles[index]

	var endDay *time.Time
	if end != nil {
		day := DateOnly(*end)
		endDay = &day
	}

	if cycle.IsRegular() {
		draft := CycleDraft{ID: cycle.ID, Start: cycle.StartDate, End: endDay}
		if err := ValidateNewCycle(draft, cycles, stats.AvgPeriodLength); err != nil {
			return CycleWriteResult{}, err
		}
	} else if endDay != nil && endDay.Before(DateOnly(cycle.StartDate)) {
		return CycleWriteResult{}, ErrEndBeforeStart
	}

	cycles[index].EndDate = endDay
	stats = Recalculate(cycles, stats)

	if err := service.history.Save(userID, cycles, stats); err != nil {
		return CycleWriteResult{}, err
	}
	return CycleWriteResult{Cycle: cycles[index], Stats: stats}, nil
}

// DeleteCycle removes a cycle and recomputes the averages over the remainder.
func (service *CycleService) DeleteCycle(userID uint, cycleID string) (models.UserStatistics, error) {
	cycles, stats, err := service.history.LoadHistory(userID)
	if err != nil {
		return models.UserStatistics{}, err
	}

	index := indexOfCycle(cycles, cycleID)
	if index < 0 {
		return models.UserStatistics{}, ErrCycleNotFound
	}

	remaining := append(cycles[:index:index], cycles[index+1:]...)
	stats = Recalculate(remaining, stats)

	if err := service.history.Save(userID, remaining, stats); err != nil {
		return models.UserStatistics{}, err
	}
	return stats, nil
}

// RecordIrregularCycle logs a single-day irregular entry (breakthrough
// bleeding, unusual spotting) that never feeds the averages or the
// prediction anchor.
func (service *CycleService) RecordIrregularCycle(userID uint, day time.Time) (CycleWriteResult, error) {
	cycles, stats, err := service.history.LoadHistory(userID)
	if err != nil {
		return CycleWriteResult{}, err
	}

	start := DateOnly(day)
	end := start
	cycle := models.Cycle{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartDate: start,
		EndDate:   &end,
		Kind:      models.KindIrregular,
	}
	cycles = append(cycles, cycle)
	stats = Recalculate(cycles, stats)

	if err := service.history.Save(userID, cycles, stats); err != nil {
		return CycleWriteResult{}, err
	}
	return CycleWriteResult{Cycle: cycle, Stats: stats}, nil
}

// SeedStatistics writes user-declared averages during onboarding, before any
// history exists to derive them from. Seeded values behave like prior
// averages: the next recalculation with real samples replaces them.
func (service *CycleService) SeedStatistics(userID uint, cycleLength int, periodLength int) (models.UserStatistics, error) {
	if cycleLength < 15 || cycleLength > 60 || periodLength < 1 || periodLength > 14 {
		return models.UserStatistics{}, ErrInvalidSeedValues
	}

	cycles, stats, err := service.history.LoadHistory(userID)
	if err != nil {
		return models.UserStatistics{}, err
	}

	stats.AvgCycleLength = cycleLength
	stats.AvgPeriodLength = periodLength
	stats = Recalculate(cycles, stats)

	if err := service.history.Save(userID, cycles, stats); err != nil {
		return models.UserStatistics{}, err
	}
	return stats, nil
}

// LoadHistory exposes the stored document for read-only consumers.
func (service *CycleService) LoadHistory(userID uint) ([]models.Cycle, models.UserStatistics, error) {
	return service.history.LoadHistory(userID)
}

func indexOfCycle(cycles []models.Cycle, cycleID string) int {
	for index, cycle := range cycles {
		if cycle.ID == cycleID {
			return index
		}
	}
	return -1
}
