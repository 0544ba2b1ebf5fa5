package services

import (
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
)

type EventRepository interface {
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyEvent, bool, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyEvent, error)
	ListRecent(userID uint, limit int) ([]models.DailyEvent, error)
	Create(event *models.DailyEvent) error
	Save(event *models.DailyEvent) error
	DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) error
}

// EventService owns the day-keyed symptom log. One record per user and day;
// repeated writes merge flags instead of replacing the record.
type EventService struct {
	events EventRepository
}

func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events}
}

// MergeEventFlags combines two flag sets; a flag set in either input stays
// set. This makes UpsertDailyEvent an idempotent, additive upsert.
func MergeEventFlags(existing models.EventFlags, incoming models.EventFlags) models.EventFlags {
	return models.EventFlags{
		Intercourse:    existing.Intercourse || incoming.Intercourse,
		Pain:           existing.Pain || incoming.Pain,
		Spotting:       existing.Spotting || incoming.Spotting,
		Mood:           existing.Mood || incoming.Mood,
		HotFlashes:     existing.HotFlashes || incoming.HotFlashes,
		Insomnia:       existing.Insomnia || incoming.Insomnia,
		RoutineCheckup: existing.RoutineCheckup || incoming.RoutineCheckup,
		ProblemCheckup: existing.ProblemCheckup || incoming.ProblemCheckup,
	}
}

func (service *EventService) UpsertDailyEvent(userID uint, day time.Time, flags models.EventFlags, location *time.Location) (models.DailyEvent, error) {
	dayStart, dayEnd := DayRange(day, location)
	existing, found, err := service.events.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyEvent{}, err
	}

	if found {
		existing.EventFlags = MergeEventFlags(existing.EventFlags, flags)
		if err := service.events.Save(&existing); err != nil {
			return models.DailyEvent{}, err
		}
		return existing, nil
	}

	event := models.DailyEvent{
		UserID:     userID,
		Date:       dayStart,
		EventFlags: flags,
	}
	if err := service.events.Create(&event); err != nil {
		return models.DailyEvent{}, err
	}
	return event, nil
}

func (service *EventService) DeleteDailyEvent(userID uint, day time.Time, location *time.Location) error {
	dayStart, dayEnd := DayRange(day, location)
	return service.events.DeleteByUserAndDayRange(userID, dayStart, dayEnd)
}

func (service *EventService) ListEvents(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.DailyEvent, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, location)
		toEnd = &end
	}
	return service.events.ListByUserRange(userID, fromStart, toEnd)
}

func (service *EventService) ListRecentEvents(userID uint, limit int) ([]models.DailyEvent, error) {
	return service.events.ListRecent(userID, limit)
}
