package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/api"
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/config"
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/db"
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/logger"
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/scheduler"
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("config load failed: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)
	log := logger.Log

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repos := db.NewRepositories(database)
	cycleService := services.NewCycleService(repos.History)
	eventService := services.NewEventService(repos.Events)

	handler := api.NewHandler(cycleService, eventService, location, cfg.PredictionHorizon, log)

	app := fiber.New(fiber.Config{
		AppName:               "Palmoticeva",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	refresher := scheduler.NewStatsRefresher(repos.History, log, cfg.CronSpecStatsRefresh, location)
	if err := refresher.Start(); err != nil {
		log.Fatalf("scheduler init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		refresher.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("server shutdown failed: %v", err)
		}
	}()

	log.Infof("Palmoticeva listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Log.Warnf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
