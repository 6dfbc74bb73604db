package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"

	"quickshow/internal/app"
	"quickshow/internal/config"
	"quickshow/internal/db"
	"quickshow/internal/infrastructure/clients"
	"quickshow/internal/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.App.Debug {
		log.Init(logrus.DebugLevel)
	} else {
		log.Init(logrus.InfoLevel)
	}

	dbHandle, err := db.Open(cfg.Postgres.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open postgres connection")
	}
	defer dbHandle.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()

	paymentsClient := clients.NewPaymentsClient(cfg.Payments.BaseURL, cfg.Payments.APIKey)
	emailClient := clients.NewEmailClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.Sender)
	catalogClient := clients.NewMovieCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey)

	a, err := app.NewApp(
		cfg,
		watermill.NewStdLogger(cfg.App.Debug, false),
		paymentsClient,
		emailClient,
		catalogClient,
		redisClient,
		dbHandle,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize app")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("app stopped with error")
	}
}
