package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lifelag/lifelag/internal/api"
	"github.com/lifelag/lifelag/internal/config"
	"github.com/lifelag/lifelag/internal/db"
	"github.com/lifelag/lifelag/internal/metrics"
	"github.com/lifelag/lifelag/internal/notify"
	"github.com/lifelag/lifelag/internal/services"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	appMetrics := metrics.Default()
	sender := newSender(cfg.TelegramBotToken)

	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey:            cfg.SecretKey,
		Location:             cfg.Location,
		CookieSecure:         cfg.CookieSecure,
		CheckinRatePerMinute: cfg.CheckinRatePerMinute,
		CheckinRateBurst:     cfg.CheckinRateBurst,
		Sender:               sender,
		Metrics:              appMetrics,
		MicroGoalSource:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6c61676c)),
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := newApp(handler)

	repositories := db.NewRepositories(database)
	reminders := services.NewReminderService(repositories.Users, repositories.Checkins, sender, appMetrics, services.ReminderConfig{
		CheckinSpec: cfg.CheckinReminderSpec,
		PulseSpec:   cfg.PulseReminderSpec,
		Location:    cfg.Location,
	})
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	if err := reminders.Start(lifecycleCtx); err != nil {
		log.Fatalf("reminder scheduler init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Life Lag listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Life Lag",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app
}

func newSender(telegramToken string) notify.Sender {
	fallback := notify.NewLogSender(log.New(os.Stderr, "", log.LstdFlags))
	if telegramToken == "" {
		return fallback
	}

	sender, err := notify.NewTelegramSender(telegramToken)
	if err != nil {
		log.Printf("notify: telegram init failed, reminders will be logged only: %v", err)
		return fallback
	}
	return sender
}
