package api

import (
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetSnapshot returns the flat summary screen payload: today's status flags,
// countdown, averages, recent completed cycles and recent symptom rows.
func (handler *Handler) GetSnapshot(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	today, err := handler.resolveToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today value")
	}

	cycles, stats, err := handler.cycles.LoadHistory(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	events, err := handler.events.ListRecentEvents(userID, services.SnapshotRecentEventCount)
	if err != nil {
		return handler.serviceError(c, err)
	}

	snapshot := services.BuildSnapshot(cycles, events, stats, today, handler.predictionHorizon)
	return c.JSON(snapshot)
}
