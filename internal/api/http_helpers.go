package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseUserIDParam(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return services.DateAtLocation(parsed, location), nil
}

// parseOptionalDayQuery returns nil for an absent query value and an error
// only for a present but malformed one.
func parseOptionalDayQuery(raw string, location *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := parseDayParam(raw, location)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// serviceError maps domain failures onto HTTP statuses. Overlaps and a second
// open cycle are conflicts with what is already stored; an end before its
// start is a well-formed but unprocessable interval.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	var overlap *services.OverlapError
	switch {
	case errors.As(err, &overlap):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":          "cycle overlaps an existing cycle",
			"conflict_id":    overlap.ConflictID,
			"conflict_start": services.FormatISODate(overlap.ConflictStart),
			"conflict_end":   services.FormatISODate(overlap.ConflictEnd),
		})
	case errors.Is(err, services.ErrCycleAlreadyOpen):
		return apiError(c, fiber.StatusConflict, "an open cycle already exists")
	case errors.Is(err, services.ErrEndBeforeStart):
		return apiError(c, fiber.StatusUnprocessableEntity, "end date is before start date")
	case errors.Is(err, services.ErrCycleNotFound):
		return apiError(c, fiber.StatusNotFound, "cycle not found")
	case errors.Is(err, services.ErrInvalidSeedValues):
		return apiError(c, fiber.StatusUnprocessableEntity, "seed values out of range")
	default:
		handler.log.WithError(err).Error("request failed")
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
