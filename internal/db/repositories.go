package db

import "gorm.io/gorm"

type Repositories struct {
	History *HistoryStore
	Events  *EventRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		History: NewHistoryStore(database),
		Events:  NewEventRepository(database),
	}
}
