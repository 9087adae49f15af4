// Package subscription contains the subscription domain module
package subscription

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/MinaAlerts/config"
	telegramDelivery "github.com/Conte777/MinaAlerts/internal/domain/subscription/delivery/telegram"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
	kafkaRepo "github.com/Conte777/MinaAlerts/internal/domain/subscription/repository/kafka"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/repository/postgres"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/usecase/business"
	kafkaInfra "github.com/Conte777/MinaAlerts/internal/infrastructure/kafka"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/metrics"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/telegram"
)

// Module provides subscription domain components for fx dependency injection
var Module = fx.Module("subscription",
	fx.Provide(
		NewRepository,
		NewEventProducer,
		NewMetricsRecorder,
		NewUseCase,
		telegramDelivery.NewHandlers,
		telegramDelivery.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

func NewRepository(db *gorm.DB, cfg *config.DatabaseConfig) deps.SubscriptionStore {
	return postgres.NewRepository(db, cfg.QueryTimeout)
}

func NewEventProducer(producer *kafkaInfra.KafkaProducer, cfg *config.KafkaConfig) deps.EventProducer {
	return kafkaRepo.NewProducer(producer, cfg.Topic)
}

func NewMetricsRecorder(m *metrics.Metrics) deps.MetricsRecorder {
	return m
}

func NewUseCase(
	store deps.SubscriptionStore,
	producer deps.EventProducer,
	recorder deps.MetricsRecorder,
	cfg *config.SubscriptionConfig,
	logger zerolog.Logger,
) deps.SubscriptionUseCase {
	return business.NewUseCase(store, producer, recorder, cfg, logger.With().Str("component", "subscription").Logger())
}

// registerRoutes takes the store and producer so their close hooks are appended
// before polling and run after it has stopped
func registerRoutes(
	lc fx.Lifecycle,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
	_ deps.SubscriptionStore,
	_ deps.EventProducer,
) {
	router.RegisterRoutes(bot.Raw(), bot)
	telegram.RegisterLifecycle(lc, bot, telegramDelivery.MenuCommands())
}
