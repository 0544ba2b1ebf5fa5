package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	users := api.Group("/users/:userID")

	users.Get("/snapshot", handler.GetSnapshot)
	users.Get("/predictions", handler.GetPredictions)

	users.Get("/stats", handler.GetStatistics)
	users.Post("/stats/seed", handler.SeedStatistics)

	users.Get("/cycles", handler.ListCycles)
	users.Post("/cycles", handler.LogCycleStart)
	users.Post("/cycles/irregular", handler.RecordIrregularCycle)
	users.Patch("/cycles/:id/end", handler.LogCycleEnd)
	users.Delete("/cycles/:id", handler.DeleteCycle)

	users.Get("/events", handler.ListEvents)
	users.Put("/events/:date", handler.UpsertDailyEvent)
	users.Delete("/events/:date", handler.DeleteDailyEvent)
}
