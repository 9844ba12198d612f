package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikhailRaia/shortener-form/internal/app"
	"github.com/MikhailRaia/shortener-form/internal/config"
	"github.com/MikhailRaia/shortener-form/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Error running application")
		stop()
		os.Exit(1)
	}
}
