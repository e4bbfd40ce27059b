package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/andresouzadev/sindigo/internal/api"
	"github.com/andresouzadev/sindigo/internal/db"
	"github.com/andresouzadev/sindigo/pkg/config"
	"github.com/andresouzadev/sindigo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config load failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	location := mustLoadLocation(cfg.App.Timezone, log)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DB.Path, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("database init failed")
	}

	handler := api.NewHandler(database, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		BodyLimit:             32 << 20, // document uploads and snapshot restores
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTP.Addr()).
		Str("db", cfg.DB.Path).
		Str("tz", location.String()).
		Msg("listening")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func mustLoadLocation(name string, log zerolog.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Msgf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
