package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/iliyamo/themepark/internal/config"
	"github.com/iliyamo/themepark/internal/database"
	"github.com/iliyamo/themepark/internal/handler"
	"github.com/iliyamo/themepark/internal/queue"
	"github.com/iliyamo/themepark/internal/repository"
	"github.com/iliyamo/themepark/internal/router"
	"github.com/iliyamo/themepark/internal/service"
	"github.com/iliyamo/themepark/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	if cfg.AutoMigrate {
		if err := database.Migrate(logger, cfg.DSN); err != nil {
			return err
		}
	}
	db, err := database.Open(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	var events service.Publisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		events = queue.NewPublisher(cfg.AMQPURL, logger)
	} else {
		logger.Info("RABBITMQ_URL not set; events disabled")
	}

	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient(ctx)
	if rdb != nil {
		defer rdb.Close()
	} else if cacheCfg.Enabled {
		logger.Warn("redis unreachable; list cache disabled")
	}

	auth := service.NewAuthService(repository.NewUserRepo(db), tokens, cfg.BcryptCost, logger)
	tickets := service.NewTicketService(repository.NewTicketRepo(db), events, logger)
	bookings := service.NewBookingService(repository.NewBookingRepo(db), events, logger)

	e := router.New(router.Deps{
		Auth:        handler.NewAuthHandler(auth, logger),
		Tickets:     handler.NewTicketHandler(tickets, logger),
		Bookings:    handler.NewBookingHandler(bookings, logger),
		Tokens:      tokens,
		Cache:       cacheCfg,
		Redis:       rdb,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	return serveHTTP(e, cfg, logger)
}
