package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the alerts bot
type Config struct {
	Telegram     TelegramConfig
	Database     DatabaseConfig
	Subscription SubscriptionConfig
	Kafka        KafkaConfig
	Logging      LoggingConfig
	Service      ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string        `env:"DATABASE_HOST" envDefault:"localhost"`
	Port         string        `env:"DATABASE_PORT" envDefault:"5432"`
	User         string        `env:"DATABASE_USER" envDefault:"subscriptions_user"`
	Password     string        `env:"DATABASE_PASSWORD" envDefault:"subscriptions_pass"`
	Name         string        `env:"DATABASE_NAME" envDefault:"subscriptions"`
	SSLMode      string        `env:"DATABASE_SSLMODE" envDefault:"disable"`
	QueryTimeout time.Duration `env:"DATABASE_QUERY_TIMEOUT" envDefault:"5s"`
}

// SubscriptionConfig holds quota and retry settings for subscription handling
type SubscriptionConfig struct {
	MaxSubs           int           `env:"SUBSCRIPTION_MAX_SUBS" envDefault:"10"`
	RetryMax          uint64        `env:"STORE_RETRY_MAX" envDefault:"3"`
	RetryInitialDelay time.Duration `env:"STORE_RETRY_INITIAL_INTERVAL" envDefault:"200ms"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9093"`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"alerts.subscription.changed"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string `env:"SERVICE_NAME" envDefault:"mina-alerts-bot"`
	Port string `env:"SERVICE_PORT" envDefault:"8080"`
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config       *Config
	Telegram     *TelegramConfig
	Database     *DatabaseConfig
	Subscription *SubscriptionConfig
	Kafka        *KafkaConfig
	Logging      *LoggingConfig
	Service      *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:       cfg,
		Telegram:     &cfg.Telegram,
		Database:     &cfg.Database,
		Subscription: &cfg.Subscription,
		Kafka:        &cfg.Kafka,
		Logging:      &cfg.Logging,
		Service:      &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Subscription.MaxSubs <= 0 {
		return fmt.Errorf("SUBSCRIPTION_MAX_SUBS must be positive, got %d", c.Subscription.MaxSubs)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
