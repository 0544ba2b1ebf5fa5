package db

import (
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// HistoryStore persists one user's cycle list and derived statistics as a
// single read-modify-write unit. Errors are returned as-is so callers can
// distinguish transient I/O failures from the valid empty first-time state.
type HistoryStore struct {
	database *gorm.DB
}

func NewHistoryStore(database *gorm.DB) *HistoryStore {
	return &HistoryStore{database: database}
}

func (store *HistoryStore) LoadHistory(userID uint) ([]models.Cycle, models.UserStatistics, error) {
	cycles := make([]models.Cycle, 0)
	if err := store.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, created_at ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, models.UserStatistics{}, err
	}

	stats := models.UserStatistics{UserID: userID}
	result := store.database.
		Where("user_id = ?", userID).
		Limit(1).
		Find(&stats)
	if result.Error != nil {
		return nil, models.UserStatistics{}, result.Error
	}
	if result.RowsAffected == 0 {
		stats = models.UserStatistics{UserID: userID}
	}

	return cycles, stats, nil
}

// Save replaces the user's whole cycle document and statistics atomically.
// Last writer wins at the granularity of the saved document.
func (store *HistoryStore) Save(userID uint, cycles []models.Cycle, stats models.UserStatistics) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Cycle{}).Error; err != nil {
			return err
		}
		for index := range cycles {
			cycles[index].UserID = userID
			if err := tx.Create(&cycles[index]).Error; err != nil {
				return err
			}
		}

		stats.UserID = userID
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserStatistics{}).Error; err != nil {
			return err
		}
		return tx.Create(&stats).Error
	})
}

// ListUserIDs enumerates every user with stored cycle data or statistics.
func (store *HistoryStore) ListUserIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := store.database.
		Raw(`SELECT user_id FROM cycles UNION SELECT user_id FROM user_statistics ORDER BY user_id`).
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
