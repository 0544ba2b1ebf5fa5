package api

import (
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type seedStatisticsPayload struct {
	CycleLength  int `json:"cycle_length"`
	PeriodLength int `json:"period_length"`
}

func (handler *Handler) GetStatistics(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	_, stats, err := handler.cycles.LoadHistory(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) SeedStatistics(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("userID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload seedStatisticsPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	stats, err := handler.cycles.SeedStatistics(userID, payload.CycleLength, payload.PeriodLength)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stats)
}

// GetPredictions projects the forward window from today. An explicit ?today=
// day pins the reference point for consumers that need reproducible output.
func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
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

	window := services.Predict(cycles, stats, today, handler.predictionHorizon)
	response := fiber.Map{
		"period_days":    formatDays(window.PeriodDays),
		"ovulation_days": formatDays(window.OvulationDays),
		"fertile_days":   formatDays(window.FertileDays),
	}
	if until, predictable := services.DaysUntilNextPeriod(cycles, stats, today); predictable {
		response["days_until_next_period"] = until
	}
	return c.JSON(response)
}

func (handler *Handler) resolveToday(c *fiber.Ctx) (time.Time, error) {
	if raw := c.Query("today"); raw != "" {
		return parseDayParam(raw, handler.location)
	}
	return services.DateAtLocation(time.Now(), handler.location), nil
}

func formatDays(days []time.Time) []string {
	formatted := make([]string, 0, len(days))
	for _, day := range days {
		formatted = append(formatted, services.FormatISODate(day))
	}
	return formatted
}
