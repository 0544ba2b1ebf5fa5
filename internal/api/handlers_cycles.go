package api

import (
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type cycleStartPayload struct {
	StartDate string `json:"start_date"`
}

type cycleEndPayload struct {
	EndDate *string `json:"end_date"`
	Clear   bool    `json:"clear"`
}

type irregularCyclePayload struct {
	StartDate string `json:"start_date"`
}

type cycleWriteResponse struct {
	Cycle             models.Cycle          `json:"cycle"`
	Stats             models.UserStatistics `json:"stats"`
	ShortCycleWarning bool                  `json:"short_cycle_warning,omitempty"`
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	cycles, stats, err := handler.cycles.LoadHistory(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cycles": cycles, "stats": stats})
}

func (handler *Handler) LogCycleStart(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload cycleStartPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	start, err := parseDayParam(payload.StartDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	}

	result, err := handler.cycles.LogCycleStart(userID, start)
	if err != nil {
		return handler.serviceError(c, err)
	}

	handler.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"cycle_id": result.Cycle.ID,
	}).Info("cycle started")

	return c.Status(fiber.StatusCreated).JSON(cycleWriteResponse{
		Cycle:             result.Cycle,
		Stats:             result.Stats,
		ShortCycleWarning: result.ShortCycleWarning,
	})
}

func (handler *Handler) LogCycleEnd(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	cycleID := c.Params("id")
	if cycleID == "" {
		return apiError(c, fiber.StatusBadRequest, "cycle id is required")
	}

	var payload cycleEndPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	// Reopening requires the explicit clear flag so a bare body can never
	// wipe an end date by accident.
	if payload.Clear {
		if payload.EndDate != nil {
			return apiError(c, fiber.StatusBadRequest, "end_date and clear are mutually exclusive")
		}
		result, err := handler.cycles.LogCycleEnd(userID, cycleID, nil)
		if err != nil {
			return handler.serviceError(c, err)
		}
		return c.JSON(cycleWriteResponse{Cycle: result.Cycle, Stats: result.Stats})
	}
	if payload.EndDate == nil {
		return apiError(c, fiber.StatusBadRequest, "end_date or clear is required")
	}

	day, err := parseDayParam(*payload.EndDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid end date")
	}
	result, err := handler.cycles.LogCycleEnd(userID, cycleID, &day)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(cycleWriteResponse{Cycle: result.Cycle, Stats: result.Stats})
}

func (handler *Handler) RecordIrregularCycle(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload irregularCyclePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	day, err := parseDayParam(payload.StartDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	}

	result, err := handler.cycles.RecordIrregularCycle(userID, day)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cycleWriteResponse{Cycle: result.Cycle, Stats: result.Stats})
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	cycleID := c.Params("id")
	if cycleID == "" {
		return apiError(c, fiber.StatusBadRequest, "cycle id is required")
	}

	stats, err := handler.cycles.DeleteCycle(userID, cycleID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}
