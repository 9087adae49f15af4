package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/MinaAlerts/config"
)

// Module provides the Kafka producer for fx dependency injection
var Module = fx.Module("kafka",
	fx.Provide(NewProducer),
)

// NewProducer creates the producer when Kafka is enabled and closes it on shutdown
func NewProducer(lc fx.Lifecycle, cfg *config.KafkaConfig, log zerolog.Logger) (*KafkaProducer, error) {
	log = log.With().Str("component", "kafka-producer").Logger()

	if !cfg.Enabled {
		log.Info().Msg("Kafka disabled, subscription events will not be published")
		return NewDisabledProducer(log), nil
	}

	producer, err := NewKafkaProducer(cfg.Brokers, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			log.Info().Msg("closing kafka producer...")
			return producer.Close()
		},
	})

	return producer, nil
}
