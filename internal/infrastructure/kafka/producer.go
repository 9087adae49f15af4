// Package kafka contains the Kafka producer infrastructure
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// KafkaProducer sends JSON events with a sarama SyncProducer.
// A producer created without brokers is disabled and drops every event.
// Sends after Close are dropped the same way.
type KafkaProducer struct {
	mu           sync.RWMutex
	producer     sarama.SyncProducer
	logger       zerolog.Logger
	successCount atomic.Uint64
	errorCount   atomic.Uint64
	failing      atomic.Bool
}

// NewKafkaProducer connects a SyncProducer to brokers
func NewKafkaProducer(brokers []string, logger zerolog.Logger) (*KafkaProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers specified")
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 10 * time.Second
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		logger.Error().Err(err).Strs("brokers", brokers).Msg("failed to create Kafka SyncProducer")
		return nil, err
	}

	logger.Info().Strs("brokers", brokers).Msg("Kafka SyncProducer initialized")

	return NewWithSyncProducer(producer, logger), nil
}

// NewWithSyncProducer wraps an existing SyncProducer
func NewWithSyncProducer(producer sarama.SyncProducer, logger zerolog.Logger) *KafkaProducer {
	return &KafkaProducer{
		producer: producer,
		logger:   logger,
	}
}

// NewDisabledProducer returns a producer that drops events
func NewDisabledProducer(logger zerolog.Logger) *KafkaProducer {
	return &KafkaProducer{logger: logger}
}

// Enabled reports whether events are actually sent
func (p *KafkaProducer) Enabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.producer != nil
}

// IsHealthy reports false while the most recent send has failed.
// A disabled producer is always healthy.
func (p *KafkaProducer) IsHealthy() bool {
	return !p.failing.Load()
}

// Close waits for in-flight sends and closes the underlying producer
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.producer == nil {
		return nil
	}

	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("failed to close Kafka producer")
		return err
	}

	p.producer = nil
	p.logger.Info().Msg("Kafka producer closed")
	return nil
}

// SendToTopic marshals event to JSON and sends it to topic
func (p *KafkaProducer) SendToTopic(ctx context.Context, topic string, key string, event any) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.producer == nil {
		p.logger.Debug().Str("topic", topic).Str("key", key).Msg("kafka disabled, event dropped")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("topic", topic).
			Uint64("error_count", p.errorCount.Add(1)).
			Msg("failed to marshal event")
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(bytes),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	latency := time.Since(start)

	if err != nil {
		p.logger.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Dur("latency", latency).
			Uint64("error_count", p.errorCount.Add(1)).
			Msg("failed to send event to kafka")
		p.failing.Store(true)
		return err
	}

	p.failing.Store(false)
	p.logger.Debug().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", partition).
		Int64("offset", offset).
		Dur("latency", latency).
		Uint64("success_count", p.successCount.Add(1)).
		Msg("event sent to kafka")

	return nil
}
