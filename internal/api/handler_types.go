package api

import (
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	cycles            *services.CycleService
	events            *services.EventService
	location          *time.Location
	predictionHorizon int
	log               *logrus.Logger
}

func NewHandler(cycles *services.CycleService, events *services.EventService, location *time.Location, predictionHorizon int, log *logrus.Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	if predictionHorizon <= 0 {
		predictionHorizon = services.DefaultPredictionHorizon
	}
	return &Handler{
		cycles:            cycles,
		events:            events,
		location:          location,
		predictionHorizon: predictionHorizon,
		log:               log,
	}
}
