package http

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/http/server"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/kafka"
)

// Module registers the health endpoint on the HTTP server
var Module = fx.Module("health",
	fx.Invoke(RegisterHealth),
)

// RegisterHealth mounts GET /health
func RegisterHealth(srv *server.Server, store deps.SubscriptionStore, producer *kafka.KafkaProducer, logger zerolog.Logger) {
	srv.Handle("/health", NewHealthHandler(store, producer, logger.With().Str("component", "health").Logger()))
}
