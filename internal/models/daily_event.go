package models

import "time"

const (
	EventIntercourse    = "intercourse"
	EventPain           = "pain"
	EventSpotting       = "spotting"
	EventMood           = "mood"
	EventHotFlashes     = "hot_flashes"
	EventInsomnia       = "insomnia"
	EventRoutineCheckup = "routine_checkup"
	EventProblemCheckup = "problem_checkup"
)

// EventFlags is the fixed symptom vocabulary for one calendar day.
type EventFlags struct {
	Intercourse    bool `json:"intercourse"`
	Pain           bool `json:"pain"`
	Spotting       bool `json:"spotting"`
	Mood           bool `json:"mood"`
	HotFlashes     bool `json:"hot_flashes"`
	Insomnia       bool `json:"insomnia"`
	RoutineCheckup bool `json:"routine_checkup"`
	ProblemCheckup bool `json:"problem_checkup"`
}

type DailyEvent struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_events_user_date" json:"-"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_events_user_date" json:"date"`
	EventFlags `gorm:"embedded"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (flags EventFlags) IsEmpty() bool {
	return flags == EventFlags{}
}

// ActiveFlagNames lists the set flags in a stable order, one name per flag.
func (flags EventFlags) ActiveFlagNames() []string {
	names := make([]string, 0, 8)
	if flags.Intercourse {
		names = append(names, EventIntercourse)
	}
	if flags.Pain {
		names = append(names, EventPain)
	}
	if flags.Spotting {
		names = append(names, EventSpotting)
	}
	if flags.Mood {
		names = append(names, EventMood)
	}
	if flags.HotFlashes {
		names = append(names, EventHotFlashes)
	}
	if flags.Insomnia {
		names = append(names, EventInsomnia)
	}
	if flags.RoutineCheckup {
		names = append(names, EventRoutineCheckup)
	}
	if flags.ProblemCheckup {
		names = append(names, EventProblemCheckup)
	}
	return names
}
