package models

import "time"

const (
	KindRegular   = "regular"
	KindIrregular = "irregular"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type Cycle struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index:idx_cycles_user_start" json:"-"`
	StartDate time.Time  `gorm:"type:date;not null;index:idx_cycles_user_start" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Kind      string     `gorm:"not null;default:regular" json:"kind"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (cycle Cycle) IsOpen() bool {
	return cycle.EndDate == nil
}

func (cycle Cycle) IsRegular() bool {
	return cycle.Kind == KindRegular
}

// PeriodLengthDays is the inclusive day count of a closed cycle, 0 while open.
func (cycle Cycle) PeriodLengthDays() int {
	if cycle.EndDate == nil {
		return 0
	}
	return calendarDaysBetween(cycle.StartDate, *cycle.EndDate) + 1
}

// calendarDaysBetween subtracts calendar dates free of their timezone, so an
// interval spanning a DST transition still counts full days.
func calendarDaysBetween(from time.Time, to time.Time) int {
	fromYear, fromMonth, fromDay := from.Date()
	toYear, toMonth, toDay := to.Date()
	fromDate := time.Date(fromYear, fromMonth, fromDay, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(toYear, toMonth, toDay, 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate) / (24 * time.Hour))
}
