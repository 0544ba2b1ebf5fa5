package api

import (
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListEvents(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	from, err := parseOptionalDayQuery(c.Query("from"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseOptionalDayQuery(c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	events, err := handler.events.ListEvents(userID, from, to, handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

func (handler *Handler) UpsertDailyEvent(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var flags models.EventFlags
	if err := c.BodyParser(&flags); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if flags.IsEmpty() {
		return apiError(c, fiber.StatusBadRequest, "at least one event flag is required")
	}

	event, err := handler.events.UpsertDailyEvent(userID, day, flags, handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(event)
}

func (handler *Handler) DeleteDailyEvent(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.events.DeleteDailyEvent(userID, day, handler.location); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
