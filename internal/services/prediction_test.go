package services

import (
	"testing"
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

func scenarioHistory(t *testing.T) ([]models.Cycle, models.UserStatistics) {
	t.Helper()
	cycles := []models.Cycle{
		closedCycle(t, "jan", "2024-01-01", "2024-01-05"),
		closedCycle(t, "feb", "2024-01-29", "2024-02-02"),
	}
	return cycles, models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5}
}

func dayKeys(days []time.Time) map[string]bool {
	keys := make(map[string]bool, len(days))
	for _, day := range days {
		keys[day.Format("2006-01-02")] = true
	}
	return keys
}

func TestPredict_ProjectsNextCycleFromAnchor(t *testing.T) {
	t.Parallel()

	cycles, stats := scenarioHistory(t)
	today := mustParseDay(t, "2024-02-20")

	window := Predict(cycles, stats, today, DefaultPredictionHorizon)

	periodKeys := dayKeys(window.PeriodDays)
	for _, expected := range []string{"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"} {
		if !periodKeys[expected] {
			t.Fatalf("expected predicted period day %s, got %v", expected, window.PeriodDays)
		}
	}

	if got := window.OvulationDays[0].Format("2006-01-02"); got != "2024-02-12" {
		t.Fatalf("expected first ovulation day 2024-02-12, got %s", got)
	}

	fertileKeys := dayKeys(window.FertileDays)
	for _, expected := range []string{"2024-02-08", "2024-02-09", "2024-02-10", "2024-02-11", "2024-02-12", "2024-02-13"} {
		if !fertileKeys[expected] {
			t.Fatalf("expected fertile day %s", expected)
		}
	}
	if fertileKeys["2024-02-07"] || fertileKeys["2024-02-14"] {
		t.Fatalf("expected fertile window to stop at 2024-02-08..2024-02-13")
	}
}

func TestPredict_HorizonBoundsTheProjection(t *testing.T) {
	t.Parallel()

	cycles, stats := scenarioHistory(t)
	window := Predict(cycles, stats, mustParseDay(t, "2024-02-20"), 6)

	if len(window.OvulationDays) != 6 {
		t.Fatalf("expected 6 ovulation days, got %d", len(window.OvulationDays))
	}
	if len(window.FertileDays) != 36 {
		t.Fatalf("expected 36 fertile days, got %d", len(window.FertileDays))
	}
	if len(window.PeriodDays) != 30 {
		t.Fatalf("expected 30 predicted period days, got %d", len(window.PeriodDays))
	}

	lastStart := mustParseDay(t, "2024-01-29").AddDate(0, 0, 28*6)
	if !dayKeys(window.PeriodDays)[lastStart.Format("2006-01-02")] {
		t.Fatalf("expected sixth projected start %s to be present", lastStart.Format("2006-01-02"))
	}
}

func TestPredict_EmptyHistoryYieldsEmptySets(t *testing.T) {
	t.Parallel()

	window := Predict(nil, models.UserStatistics{AvgCycleLength: 28, AvgPeriodLength: 5}, mustParseDay(t, "2024-02-20"), 6)
	if len(window.PeriodDays) != 0 || len(window.OvulationDays) != 0 || len(window.FertileDays) != 0 {
		t.Fatalf("expected all-empty prediction for empty history, got %+v", window)
	}
}

func TestPredict_ZeroAverageYieldsEmptySets(t *testing.T) {
	t.Parallel()

	cycles, _ := scenarioHistory(t)
	window := Predict(cycles, models.UserStatistics{}, mustParseDay(t, "2024-02-20"), 6)
	if len(window.PeriodDays) != 0 || len(window.OvulationDays) != 0 || len(window.FertileDays) != 0 {
		t.Fatalf("expected no guessing with a zero cycle average, got %+v", window)
	}
}

func TestPredict_NeverShadowsLoggedDays(t *testing.T) {
	t.Parallel()

	cycles, stats := scenarioHistory(t)
	// Breakthrough bleeding logged inside the first projected window.
	spottingEnd := mustParseDay(t, "2024-02-27")
	cycles = append(cycles, models.Cycle{
		ID:        "spotting",
		StartDate: mustParseDay(t, "2024-02-26"),
		EndDate:   &spottingEnd,
		Kind:      models.KindIrregular,
	})

	window := Predict(cycles, stats, mustParseDay(t, "2024-02-20"), 6)

	logged := LoggedPeriodDays(cycles)
	for _, day := range window.PeriodDays {
		if logged[day.Format("2006-01-02")] {
			t.Fatalf("predicted day %s shadows a logged day", day.Format("2006-01-02"))
		}
	}
	predicted := dayKeys(window.PeriodDays)
	if predicted["2024-02-26"] || predicted["2024-02-27"] {
		t.Fatalf("expected logged days to be excluded from the prediction")
	}
	for _, stillExpected := range []string{"2024-02-28", "2024-02-29", "2024-03-01"} {
		if !predicted[stillExpected] {
			t.Fatalf("expected remaining predicted day %s", stillExpected)
		}
	}
}

func TestPredict_IrregularCycleNeverAnchors(t *testing.T) {
	t.Parallel()

	cycles, stats := scenarioHistory(t)
	spottingEnd := mustParseDay(t, "2024-02-15")
	cycles = append(cycles, models.Cycle{
		ID:        "spotting",
		StartDate: mustParseDay(t, "2024-02-15"),
		EndDate:   &spottingEnd,
		Kind:      models.KindIrregular,
	})

	anchor, found := LatestRegularCycle(cycles)
	if !found || anchor.ID != "feb" {
		t.Fatalf("expected the latest regular cycle to anchor, got %+v", anchor)
	}

	window := Predict(cycles, stats, mustParseDay(t, "2024-02-20"), 6)
	if !dayKeys(window.PeriodDays)["2024-02-26"] {
		t.Fatalf("expected projection from the regular anchor, got %v", window.PeriodDays)
	}
}

func TestDaysUntilNextPeriod(t *testing.T) {
	t.Parallel()

	cycles, stats := scenarioHistory(t)

	cases := []struct {
		name  string
		today string
		want  int
	}{
		{name: "upcoming", today: "2024-02-20", want: 6},
		{name: "on the predicted day", today: "2024-02-26", want: 0},
		{name: "lapsed prediction goes negative", today: "2024-04-01", want: -35},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got, predictable := DaysUntilNextPeriod(cycles, stats, mustParseDay(t, testCase.today))
			if !predictable {
				t.Fatalf("expected a prediction for %s", testCase.today)
			}
			if got != testCase.want {
				t.Fatalf("expected %d days until next period, got %d", testCase.want, got)
			}
		})
	}
}

func TestDaysUntilNextPeriod_AbsentWithoutData(t *testing.T) {
	t.Parallel()

	if _, predictable := DaysUntilNextPeriod(nil, models.UserStatistics{AvgCycleLength: 28}, mustParseDay(t, "2024-02-20")); predictable {
		t.Fatalf("expected no prediction for empty history")
	}

	cycles, _ := scenarioHistory(t)
	if _, predictable := DaysUntilNextPeriod(cycles, models.UserStatistics{}, mustParseDay(t, "2024-02-20")); predictable {
		t.Fatalf("expected no prediction with a zero cycle average")
	}
}

func TestLoggedPeriodDays_OpenCycleOnlyConfirmsItsStart(t *testing.T) {
	t.Parallel()

	logged := LoggedPeriodDays([]models.Cycle{openCycle(t, "open", "2024-02-26")})
	if !logged["2024-02-26"] {
		t.Fatalf("expected the open cycle start to be logged")
	}
	if logged["2024-02-27"] {
		t.Fatalf("expected inferred days of an open cycle to stay unlogged")
	}
}
