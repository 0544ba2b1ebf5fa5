package services

import (
	"errors"
	"testing"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

type stubHistoryStore struct {
	cycles  []models.Cycle
	stats   models.UserStatistics
	loadErr error
	saveErr error

	saveCalled  bool
	savedCycles []models.Cycle
	savedStats  models.UserStatistics
}

func (stub *stubHistoryStore) LoadHistory(uint) ([]models.Cycle, models.UserStatistics, error) {
	if stub.loadErr != nil {
		return nil, models.UserStatistics{}, stub.loadErr
	}
	cycles := make([]models.Cycle, len(stub.cycles))
	copy(cycles, stub.cycles)
	return cycles, stub.stats, nil
}

func (stub *stubHistoryStore) Save(_ uint, cycles []models.Cycle, stats models.UserStatistics) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.saveCalled = true
	stub.savedCycles = make([]models.Cycle, len(cycles))
	copy(stub.savedCycles, cycles)
	stub.savedStats = stats
	return nil
}

func TestLogCycleStart_FirstCycleEver(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{}
	service := NewCycleService(store)

	result, err := service.LogCycleStart(7, mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("expected first cycle to be accepted, got %v", err)
	}
	if result.Cycle.ID == "" {
		t.Fatalf("expected an assigned cycle id")
	}
	if result.Cycle.Kind != models.KindRegular || result.Cycle.EndDate != nil {
		t.Fatalf("expected an open regular cycle, got %+v", result.Cycle)
	}
	if result.ShortCycleWarning {
		t.Fatalf("expected no short-cycle warning without history")
	}
	if result.Stats.AvgCycleLength != models.DefaultCycleLength || result.Stats.AvgPeriodLength != models.DefaultPeriodLength {
		t.Fatalf("expected default averages with no samples, got %+v", result.Stats)
	}
	if !store.saveCalled || len(store.savedCycles) != 1 {
		t.Fatalf("expected the new history to be saved")
	}
}

func TestLogCycleStart_RejectsOverlapWithoutSaving(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{closedCycle(t, "jan", "2024-01-01", "2024-01-05")},
		stats:  models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5},
	}
	service := NewCycleService(store)

	_, err := service.LogCycleStart(7, mustParseDay(t, "2024-01-03"))
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if store.saveCalled {
		t.Fatalf("expected nothing persisted on validation failure")
	}
}

func TestLogCycleStart_ShortGapIsAdvisoryOnly(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{closedCycle(t, "feb", "2024-02-01", "2024-02-05")},
		stats:  models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5},
	}
	service := NewCycleService(store)

	result, err := service.LogCycleStart(7, mustParseDay(t, "2024-02-15"))
	if err != nil {
		t.Fatalf("expected a short gap to pass validation, got %v", err)
	}
	if !result.ShortCycleWarning {
		t.Fatalf("expected the short-cycle advisory flag")
	}
	if !store.saveCalled {
		t.Fatalf("expected the write to go through despite the warning")
	}
}

func TestLogCycleStart_RejectsSecondOpenCycle(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{openCycle(t, "open", "2024-02-01")},
		stats:  models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5},
	}
	service := NewCycleService(store)

	if _, err := service.LogCycleStart(7, mustParseDay(t, "2024-03-05")); !errors.Is(err, ErrCycleAlreadyOpen) {
		t.Fatalf("expected ErrCycleAlreadyOpen, got %v", err)
	}
}

func TestLogCycleEnd_ClosesOpenCycleAndUpdatesAverages(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{openCycle(t, "open", "2024-02-01")},
	}
	service := NewCycleService(store)

	end := mustParseDay(t, "2024-02-05")
	result, err := service.LogCycleEnd(7, "open", &end)
	if err != nil {
		t.Fatalf("expected end to be accepted, got %v", err)
	}
	if result.Cycle.EndDate == nil || result.Cycle.EndDate.Format("2006-01-02") != "2024-02-05" {
		t.Fatalf("expected end date 2024-02-05, got %+v", result.Cycle)
	}
	if result.Stats.AvgPeriodLength != 5 {
		t.Fatalf("expected recomputed period average 5, got %d", result.Stats.AvgPeriodLength)
	}
}

func TestLogCycleEnd_ToggleOffReopensCycle(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{closedCycle(t, "feb", "2024-02-01", "2024-02-05")},
		stats:  models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5},
	}
	service := NewCycleService(store)

	result, err := service.LogCycleEnd(7, "feb", nil)
	if err != nil {
		t.Fatalf("expected toggle-off to be accepted, got %v", err)
	}
	if result.Cycle.EndDate != nil {
		t.Fatalf("expected the cycle to be open again, got %+v", result.Cycle)
	}
	if result.Stats.AvgPeriodLength != 5 {
		t.Fatalf("expected prior average retained with no samples left, got %d", result.Stats.AvgPeriodLength)
	}
}

func TestLogCycleEnd_Failures(t *testing.T) {
	t.Parallel()

	badEnd := mustParseDay(t, "2024-01-28")

	t.Run("unknown cycle", func(t *testing.T) {
		store := &stubHistoryStore{cycles: []models.Cycle{openCycle(t, "open", "2024-02-01")}}
		service := NewCycleService(store)
		end := mustParseDay(t, "2024-02-05")
		if _, err := service.LogCycleEnd(7, "missing", &end); !errors.Is(err, ErrCycleNotFound) {
			t.Fatalf("expected ErrCycleNotFound, got %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		store := &stubHistoryStore{cycles: []models.Cycle{openCycle(t, "open", "2024-02-01")}}
		service := NewCycleService(store)
		if _, err := service.LogCycleEnd(7, "open", &badEnd); !errors.Is(err, ErrEndBeforeStart) {
			t.Fatalf("expected ErrEndBeforeStart, got %v", err)
		}
	})

	t.Run("end overlapping the next cycle", func(t *testing.T) {
		store := &stubHistoryStore{
			cycles: []models.Cycle{
				closedCycle(t, "jan", "2024-01-01", "2024-01-05"),
				closedCycle(t, "feb", "2024-01-29", "2024-02-02"),
			},
			stats: models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5},
		}
		service := NewCycleService(store)
		lateEnd := mustParseDay(t, "2024-01-30")
		_, err := service.LogCycleEnd(7, "jan", &lateEnd)
		var overlap *OverlapError
		if !errors.As(err, &overlap) || overlap.ConflictID != "feb" {
			t.Fatalf("expected overlap with feb, got %v", err)
		}
	})
}

func TestDeleteCycle_RecomputesOverRemainder(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{
			closedCycle(t, "jan", "2024-01-01", "2024-01-05"),
			closedCycle(t, "feb", "2024-01-29", "2024-02-03"),
		},
		stats: models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 6},
	}
	service := NewCycleService(store)

	stats, err := service.DeleteCycle(7, "feb")
	if err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if len(store.savedCycles) != 1 || store.savedCycles[0].ID != "jan" {
		t.Fatalf("expected only jan to remain, got %+v", store.savedCycles)
	}
	if stats.AvgPeriodLength != 5 {
		t.Fatalf("expected period average recomputed to 5, got %d", stats.AvgPeriodLength)
	}
}

func TestDeleteCycle_UnknownID(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{cycles: []models.Cycle{closedCycle(t, "jan", "2024-01-01", "2024-01-05")}}
	service := NewCycleService(store)

	if _, err := service.DeleteCycle(7, "missing"); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	if store.saveCalled {
		t.Fatalf("expected nothing persisted for an unknown cycle")
	}
}

func TestRecordIrregularCycle_DoesNotMoveAverages(t *testing.T) {
	t.Parallel()

	store := &stubHistoryStore{
		cycles: []models.Cycle{
			closedCycle(t, "jan", "2024-01-01", "2024-01-05"),
			closedCycle(t, "feb", "2024-01-29", "2024-02-02"),
		},
		stats: models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5},
	}
	service := NewCycleService(store)

	result, err := service.RecordIrregularCycle(7, mustParseDay(t, "2024-02-14"))
	if err != nil {
		t.Fatalf("expected irregular entry to be accepted, got %v", err)
	}
	if result.Cycle.Kind != models.KindIrregular {
		t.Fatalf("expected kind irregular, got %s", result.Cycle.Kind)
	}
	if result.Cycle.EndDate == nil || !result.Cycle.EndDate.Equal(result.Cycle.StartDate) {
		t.Fatalf("expected a closed single-day entry, got %+v", result.Cycle)
	}
	if result.Stats.AvgCycleLength != 28 || result.Stats.AvgPeriodLength != 5 {
		t.Fatalf("expected averages untouched, got %+v", result.Stats)
	}
	if len(store.savedCycles) != 3 {
		t.Fatalf("expected the entry to be persisted alongside the history")
	}
}

func TestSeedStatistics(t *testing.T) {
	t.Parallel()

	t.Run("valid seed persists declared averages", func(t *testing.T) {
		store := &stubHistoryStore{}
		service := NewCycleService(store)

		stats, err := service.SeedStatistics(7, 30, 4)
		if err != nil {
			t.Fatalf("expected seeding to succeed, got %v", err)
		}
		if stats.AvgCycleLength != 30 || stats.AvgPeriodLength != 4 {
			t.Fatalf("expected seeded 30/4, got %+v", stats)
		}
		if !store.saveCalled {
			t.Fatalf("expected seeded statistics to be saved")
		}
	})

	t.Run("out-of-range values rejected", func(t *testing.T) {
		service := NewCycleService(&stubHistoryStore{})
		if _, err := service.SeedStatistics(7, 5, 4); !errors.Is(err, ErrInvalidSeedValues) {
			t.Fatalf("expected ErrInvalidSeedValues for cycle length 5, got %v", err)
		}
		if _, err := service.SeedStatistics(7, 30, 0); !errors.Is(err, ErrInvalidSeedValues) {
			t.Fatalf("expected ErrInvalidSeedValues for period length 0, got %v", err)
		}
	})
}

func TestCycleService_StoreErrorsPropagateUnmodified(t *testing.T) {
	t.Parallel()

	ioFailure := errors.New("store unreachable")
	service := NewCycleService(&stubHistoryStore{loadErr: ioFailure})

	if _, err := service.LogCycleStart(7, mustParseDay(t, "2024-01-01")); !errors.Is(err, ioFailure) {
		t.Fatalf("expected the raw store error, got %v", err)
	}
	if _, err := service.DeleteCycle(7, "any"); !errors.Is(err, ioFailure) {
		t.Fatalf("expected the raw store error, got %v", err)
	}
}
