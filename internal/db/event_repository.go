package db

import (
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	database *gorm.DB
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{database: database}
}

func (repo *EventRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyEvent, bool, error) {
	event := models.DailyEvent{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&event)
	if result.Error != nil {
		return models.DailyEvent{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyEvent{}, false, nil
	}
	return event, true, nil
}

func (repo *EventRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyEvent, error) {
	query := repo.database.Model(&models.DailyEvent{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	events := make([]models.DailyEvent, 0)
	if err := query.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) ListRecent(userID uint, limit int) ([]models.DailyEvent, error) {
	events := make([]models.DailyEvent, 0)
	query := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) Create(event *models.DailyEvent) error {
	return repo.database.Create(event).Error
}

func (repo *EventRepository) Save(event *models.DailyEvent) error {
	return repo.database.Save(event).Error
}

func (repo *EventRepository) DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) error {
	return repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Delete(&models.DailyEvent{}).Error
}
