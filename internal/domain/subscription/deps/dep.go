// Package deps contains interface definitions for the subscription domain dependencies
package deps

import (
	"context"
	"time"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/dto"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/entities"
)

// SubscriptionStore provides row-level access to the blocks and transactions tables
type SubscriptionStore interface {
	// Insert appends a subscription row and returns its id
	Insert(ctx context.Context, category entities.Category, identity entities.Identity, publicKey string) (uint, error)

	// Find returns the ids of rows matching identity and key
	Find(ctx context.Context, category entities.Category, identity entities.Identity, publicKey string) ([]uint, error)

	// IDs returns the ids of every row of identity in category
	IDs(ctx context.Context, category entities.Category, identity entities.Identity) ([]uint, error)

	// List returns every row of identity in category, oldest first
	List(ctx context.Context, category entities.Category, identity entities.Identity) ([]entities.Subscription, error)

	// Delete removes rows by id. Unknown ids are ignored.
	Delete(ctx context.Context, category entities.Category, ids []uint) error

	// Atomic runs fn inside one transaction that holds a lock on identity.
	// The store passed to fn is bound to that transaction.
	Atomic(ctx context.Context, identity entities.Identity, fn func(store SubscriptionStore) error) error

	// Ping checks connectivity
	Ping(ctx context.Context) error
}

// EventProducer publishes subscription change events
type EventProducer interface {
	// PublishSubscriptionChanged sends a subscription changed event
	PublishSubscriptionChanged(ctx context.Context, event *dto.SubscriptionChangedEvent) error

	// Close closes the producer
	Close() error
}

// MetricsRecorder records operation outcomes
type MetricsRecorder interface {
	// ObserveCommand counts a processed command by its outcome
	ObserveCommand(command, outcome string)

	// ObserveStoreOperation records the latency and result of a store call
	ObserveStoreOperation(operation string, duration time.Duration, err error)

	// ObserveEventPublish counts published events
	ObserveEventPublish(eventType string, err error)
}

// MessageSender sends replies to a Telegram chat
type MessageSender interface {
	// SendMessage sends an HTML formatted text message
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// SubscriptionUseCase defines the business logic of subscription management
type SubscriptionUseCase interface {
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error)
	Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (*dto.UnsubscribeResponse, error)
	List(ctx context.Context, req *dto.ListRequest) (*dto.ListResponse, error)

	// MaxSubscriptions returns the per-category quota
	MaxSubscriptions() int
}
