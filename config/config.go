package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"clubhouse/database"

	"github.com/joho/godotenv"
)

const (
	PlatformTelegram = "telegram"
	PlatformDiscord  = "discord"

	ModePolling = "polling"
	ModeWebhook = "webhook"

	DefaultMainAdmin int64 = 6501240419
)

// Config holds all application configuration
type Config struct {
	// Chat platform
	Platform      string // "telegram" or "discord"
	TelegramToken string
	TelegramMode  string // "polling" or "webhook"
	DiscordToken  string

	// Database configuration
	DatabaseURL      string
	DatabaseName     string
	DatabaseMaxConns int32 // pgx default when zero

	// Admins
	MainAdminID int64
	AdminIDs    []int64 // Seeded into the admin table at startup

	// Webhook server
	HTTPAddr          string
	WebhookURL        string
	WebhookSecret     string
	WebhookRatePerSec float64

	// Optional infrastructure
	RedisURL string // Flow drafts live in memory when empty
	NATSURL  string // Event bridge is disabled when empty

	// Bot behaviour
	FlowTimeout         time.Duration
	BroadcastRatePerSec float64
	SupportContact      string

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if isTestEnvironment() {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

func isTestEnvironment() bool {
	return os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test"
}

// load reads an optional .env file and then the environment
func load() (*Config, error) {
	// A missing .env file is normal in containers
	_ = godotenv.Load()

	config := &Config{
		Platform:      strings.ToLower(getEnvWithDefault("PLATFORM", PlatformTelegram)),
		TelegramToken: getEnvWithDefault("TELEGRAM_TOKEN", os.Getenv("BOT_TOKEN")),
		TelegramMode:  strings.ToLower(getEnvWithDefault("TELEGRAM_MODE", ModePolling)),
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		MainAdminID: DefaultMainAdmin,

		HTTPAddr:          getEnvWithDefault("HTTP_ADDR", ":8080"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookRatePerSec: 30,

		RedisURL: os.Getenv("REDIS_URL"),
		NATSURL:  os.Getenv("NATS_URL"),

		FlowTimeout:         10 * time.Minute,
		BroadcastRatePerSec: 25,
		SupportContact:      getEnvWithDefault("SUPPORT_CONTACT", "support@kcsepredictions.com"),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if mainAdmin := os.Getenv("MAIN_ADMIN"); mainAdmin != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(mainAdmin), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAIN_ADMIN must be a Telegram user id: %w", err)
		}
		config.MainAdminID = id
	}

	if adminIDs := os.Getenv("ADMIN_IDS"); adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				config.AdminIDs = append(config.AdminIDs, id)
			}
		}
	}

	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid DATABASE_MAX_CONNS %q", v)
		}
		config.DatabaseMaxConns = int32(n)
	}

	if v := os.Getenv("FLOW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FLOW_TIMEOUT: %w", err)
		}
		config.FlowTimeout = d
	}

	var err error
	if config.BroadcastRatePerSec, err = getFloat("BROADCAST_RATE_PER_SEC", config.BroadcastRatePerSec); err != nil {
		return nil, err
	}
	if config.WebhookRatePerSec, err = getFloat("WEBHOOK_RATE_PER_SEC", config.WebhookRatePerSec); err != nil {
		return nil, err
	}

	if config.Environment != "test" {
		if err := config.validate(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Platform {
	case PlatformTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_TOKEN is required")
		}
		switch c.TelegramMode {
		case ModePolling:
		case ModeWebhook:
			if c.WebhookURL == "" {
				return fmt.Errorf("WEBHOOK_URL is required in webhook mode")
			}
		default:
			return fmt.Errorf("unknown TELEGRAM_MODE %q", c.TelegramMode)
		}
	case PlatformDiscord:
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_TOKEN is required")
		}
	default:
		return fmt.Errorf("unknown PLATFORM %q", c.Platform)
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.FlowTimeout <= 0 {
		return fmt.Errorf("FLOW_TIMEOUT must be positive")
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", key)
	}
	return parsed, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Platform:            PlatformTelegram,
		TelegramToken:       "test-token",
		TelegramMode:        ModePolling,
		MainAdminID:         DefaultMainAdmin,
		HTTPAddr:            ":8080",
		WebhookRatePerSec:   30,
		FlowTimeout:         10 * time.Minute,
		BroadcastRatePerSec: 25,
		SupportContact:      "support@kcsepredictions.com",
		LogLevel:            "info",
		LogFormat:           "text",
		Environment:         "test",
	}
}
