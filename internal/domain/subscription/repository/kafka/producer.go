// Package kafka publishes subscription change events
package kafka

import (
	"context"
	"fmt"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/dto"
	suberrors "github.com/Conte777/MinaAlerts/internal/domain/subscription/errors"
)

// TopicSender is the part of the infrastructure producer used here
type TopicSender interface {
	SendToTopic(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// Producer implements deps.EventProducer on a single topic.
// Events are keyed by public key so all changes for a key stay ordered.
type Producer struct {
	sender TopicSender
	topic  string
}

// NewProducer creates a producer for topic
func NewProducer(sender TopicSender, topic string) *Producer {
	return &Producer{sender: sender, topic: topic}
}

var _ deps.EventProducer = (*Producer)(nil)

// PublishSubscriptionChanged implements deps.EventProducer
func (p *Producer) PublishSubscriptionChanged(ctx context.Context, event *dto.SubscriptionChangedEvent) error {
	if err := p.sender.SendToTopic(ctx, p.topic, event.PublicKey, event); err != nil {
		return fmt.Errorf("%w: %v", suberrors.ErrEventPublish, err)
	}
	return nil
}

// Close implements deps.EventProducer
func (p *Producer) Close() error {
	return p.sender.Close()
}
