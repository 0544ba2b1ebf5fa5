package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

// ShortCycleGapDays is the advisory threshold below which a gap between two
// regular cycle starts is flagged as suspiciously short. Callers decide what
// to do with the flag; the validator never enforces it.
const ShortCycleGapDays = 21

var (
	ErrEndBeforeStart   = errors.New("cycle end precedes start")
	ErrCycleAlreadyOpen = errors.New("another cycle is still open")
)

// OverlapError reports the cycle whose logged interval collides with a
// candidate entry.
type OverlapError struct {
	ConflictID    string
	ConflictStart time.Time
	ConflictEnd   time.Time
}

func (err *OverlapError) Error() string {
	return fmt.Sprintf(
		"cycle overlaps existing cycle %s (%s..%s)",
		err.ConflictID,
		err.ConflictStart.Format(isoDate),
		err.ConflictEnd.Format(isoDate),
	)
}

// CycleDraft is a candidate cycle entry under validation. ID is empty for new
// entries and set when an existing cycle is re-validated after an edit, so the
// cycle is not compared against itself.
type CycleDraft struct {
	ID    string
	Start time.Time
	End   *time.Time
}

// ValidateNewCycle rejects a candidate whose day interval overlaps an existing
// regular cycle, whose end precedes its start, or which would leave two
// regular cycles open at once.
func ValidateNewCycle(candidate CycleDraft, existing []models.Cycle, avgPeriodLength int) error {
	candidateStart := DateOnly(candidate.Start)
	candidateEnd := candidateStart
	if candidate.End != nil {
		candidateEnd = DateOnly(*candidate.End)
		if candidateEnd.Before(candidateStart) {
			return ErrEndBeforeStart
		}
	}

	if candidate.End == nil {
		for _, cycle := range existing {
			if cycle.ID == candidate.ID || !cycle.IsRegular() {
				continue
			}
			if cycle.IsOpen() {
				return ErrCycleAlreadyOpen
			}
		}
	}

	for _, cycle := range existing {
		if cycle.ID == candidate.ID || !cycle.IsRegular() {
			continue
		}
		existingStart, existingEnd := NormalizeCycleInterval(cycle, avgPeriodLength)
		if !candidateStart.After(existingEnd) && !existingStart.After(candidateEnd) {
			return &OverlapError{
				ConflictID:    cycle.ID,
				ConflictStart: existingStart,
				ConflictEnd:   existingEnd,
			}
		}
	}

	return nil
}

// NormalizeCycleInterval maps a cycle to the closed day interval used in
// overlap checks. An open cycle's implicit end is its start plus the current
// average period length (inclusive days), or the start itself with no average.
func NormalizeCycleInterval(cycle models.Cycle, avgPeriodLength int) (time.Time, time.Time) {
	start := DateOnly(cycle.StartDate)
	if cycle.EndDate != nil {
		return start, DateOnly(*cycle.EndDate)
	}
	if avgPeriodLength > 0 {
		return start, start.AddDate(0, 0, avgPeriodLength-1)
	}
	return start, start
}

// IsSuspiciouslyShort reports whether a candidate start follows the last
// regular cycle by fewer than ShortCycleGapDays. Pure advisory predicate.
func IsSuspiciouslyShort(candidateStart time.Time, lastRegular models.Cycle) bool {
	gap := DaysBetween(lastRegular.StartDate, candidateStart)
	return gap > 0 && gap < ShortCycleGapDays
}
