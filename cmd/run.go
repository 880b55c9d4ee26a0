package cmd

import (
	"context"
	"fmt"
	"time"

	"clubhouse/api"
	"clubhouse/bot"
	"clubhouse/bot/discord"
	"clubhouse/bot/telegram"
	"clubhouse/config"
	"clubhouse/database"
	"clubhouse/events"
	"clubhouse/flow"
	"clubhouse/infrastructure"
	"clubhouse/repository"
	"clubhouse/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg.LogLevel, cfg.LogFormat)

	log.WithField("platform", cfg.Platform).Info("Starting clubhouse bot...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), database.WithMaxConns(cfg.DatabaseMaxConns))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("Closing database connection...")
		db.Close()
	}()
	log.Info("Database connection established successfully")

	log.Info("Applying database migrations...")
	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize event bus
	log.Info("Initializing event bus...")
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Info("Initializing services...")
	services := bot.Services{
		Users:       service.NewUserService(uowFactory),
		Tournaments: service.NewTournamentService(uowFactory),
		Forums:      service.NewForumService(uowFactory),
		Social:      service.NewSocialService(uowFactory),
		Badges:      service.NewBadgeService(uowFactory),
		Payments:    service.NewPaymentService(uowFactory),
		Admins:      service.NewAdminService(uowFactory, cfg.MainAdminID),
	}
	service.NewAchievementService(services.Badges).Subscribe(eventBus)

	if added, err := services.Admins.SeedAdmins(ctx, cfg.AdminIDs); err != nil {
		return fmt.Errorf("failed to seed admins: %w", err)
	} else if added > 0 {
		log.WithField("count", added).Info("Configured admins added")
	}
	log.Info("Services initialized successfully")

	// Optional event stream
	if cfg.NATSURL != "" {
		log.Info("Connecting event bridge to NATS...")
		natsClient := infrastructure.NewNATSClient(cfg.NATSURL)
		if err := natsClient.Connect(ctx); err != nil {
			return err
		}
		defer natsClient.Close()

		if err := natsClient.EnsureEventStream(); err != nil {
			return err
		}
		infrastructure.NewEventBridge(natsClient).Attach(eventBus)
	}

	// Flow draft store
	store, closeStore, err := newFlowStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	flows := flow.NewController(store, services.Users, cfg.FlowTimeout,
		flow.TournamentFlow(services.Tournaments),
		flow.ThreadFlow(services.Forums),
		flow.ReplyFlow(services.Forums),
		flow.PaymentCodeFlow(services.Payments),
	)

	botConfig := bot.Config{
		SupportContact:      cfg.SupportContact,
		BroadcastRatePerSec: cfg.BroadcastRatePerSec,
	}

	switch cfg.Platform {
	case config.PlatformDiscord:
		err = runDiscord(ctx, cfg, botConfig, services, flows, eventBus)
	default:
		err = runTelegram(ctx, cfg, botConfig, services, flows, eventBus)
	}
	if err != nil {
		return err
	}

	log.Info("Shutdown completed")
	return nil
}

func newFlowStore(ctx context.Context, cfg *config.Config) (flow.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("Keeping flow drafts in memory")
		return flow.NewMemoryStore(), func() {}, nil
	}

	log.Info("Connecting flow store to Redis...")
	store, err := flow.NewRedisStore(ctx, cfg.RedisURL, cfg.FlowTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return store, func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("Error closing redis client")
		}
	}, nil
}

func runTelegram(ctx context.Context, cfg *config.Config, botConfig bot.Config, services bot.Services, flows *flow.Controller, bus *events.Bus) error {
	log.Info("Initializing Telegram bot...")
	client, err := telegram.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	b := bot.New(botConfig, services, flows, client)
	b.Subscribe(bus)

	if cfg.TelegramMode != config.ModeWebhook {
		log.Infof("Bot is running in %s mode...", cfg.Environment)
		return client.Poll(ctx, b)
	}

	if err := client.SetWebhook(cfg.WebhookURL, cfg.WebhookSecret); err != nil {
		return err
	}

	server := api.NewServer(api.Config{
		Addr:       cfg.HTTPAddr,
		Secret:     cfg.WebhookSecret,
		RatePerSec: cfg.WebhookRatePerSec,
	}, func(ctx context.Context, update tgbotapi.Update) error {
		return client.Process(ctx, b, update)
	})

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	return server.Run(ctx)
}

func runDiscord(ctx context.Context, cfg *config.Config, botConfig bot.Config, services bot.Services, flows *flow.Controller, bus *events.Bus) error {
	log.Info("Initializing Discord bot...")
	client, err := discord.New(cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	b := bot.New(botConfig, services, flows, client)
	b.Subscribe(bus)

	if err := client.Start(ctx, b); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}
	log.Infof("Bot is running in %s mode...", cfg.Environment)

	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := client.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	// Give in-flight handlers a moment to finish
	time.Sleep(time.Second)
	return nil
}
