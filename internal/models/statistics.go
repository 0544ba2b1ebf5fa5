package models

import "time"

// UserStatistics holds the rolling averages derived from the cycle history.
// The values are recomputed on every history mutation and are only written
// directly during onboarding seeding.
type UserStatistics struct {
	UserID          uint      `gorm:"primaryKey" json:"-"`
	AvgCycleLength  int       `gorm:"not null;default:0" json:"avg_cycle_length"`
	AvgPeriodLength int       `gorm:"not null;default:0" json:"avg_period_length"`
	UpdatedAt       time.Time `json:"-"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}

func (stats UserStatistics) Equal(other UserStatistics) bool {
	return stats.AvgCycleLength == other.AvgCycleLength &&
		stats.AvgPeriodLength == other.AvgPeriodLength
}
