// Package dto contains data transfer objects for the subscription domain
package dto

import (
	"time"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/entities"
)

// SubscribeRequest represents /subscribe <category> <public_key>
type SubscribeRequest struct {
	Identity  entities.Identity `json:"identity" validate:"required"`
	Category  string            `json:"category"`
	PublicKey string            `json:"publicKey"`
}

// SubscribeResponse describes the subscription that was created
type SubscribeResponse struct {
	ID        uint              `json:"id"`
	Category  entities.Category `json:"category"`
	PublicKey string            `json:"publicKey"`
}

// UnsubscribeRequest represents /unsubscribe with its raw arguments:
// either ["all"] or [category, public_key].
type UnsubscribeRequest struct {
	Identity entities.Identity `json:"identity" validate:"required"`
	Args     []string          `json:"args"`
}

// UnsubscribeResponse describes what was removed
type UnsubscribeResponse struct {
	All       bool              `json:"all"`
	Category  entities.Category `json:"category,omitempty"`
	PublicKey string            `json:"publicKey,omitempty"`
	Removed   int               `json:"removed"`
}

// ListRequest represents /list
type ListRequest struct {
	Identity entities.Identity `json:"identity" validate:"required"`
}

// ListResponse contains the live subscriptions of a user
type ListResponse struct {
	Subscriptions  []SubscriptionItem `json:"subscriptions"`
	MaxPerCategory int                `json:"maxPerCategory"`
}

// SubscriptionItem represents a single subscription in the list
type SubscriptionItem struct {
	Category  entities.Category `json:"category"`
	PublicKey string            `json:"publicKey"`
	CreatedAt time.Time         `json:"createdAt"`
}

// SubscriptionChangedEvent is published to Kafka after every successful
// subscribe or unsubscribe so that alert producers can refresh their view.
type SubscriptionChangedEvent struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	TelegramID int64  `json:"telegram_id"`
	PublicKey  string `json:"public_key"`
	Timestamp  int64  `json:"timestamp"`
}
