// Package entities contains domain entities
package entities

import (
	"strings"
	"time"
)

// Category selects which alert stream a subscription belongs to.
// Each category is stored in its own table.
type Category string

const (
	CategoryBlocks       Category = "blocks"
	CategoryTransactions Category = "transactions"
)

// Categories lists every known category in display order
var Categories = []Category{CategoryBlocks, CategoryTransactions}

// ParseCategory converts user input to a Category
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryBlocks:
		return CategoryBlocks, true
	case CategoryTransactions:
		return CategoryTransactions, true
	default:
		return "", false
	}
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c == CategoryBlocks || c == CategoryTransactions
}

// Table returns the table holding subscriptions of this category
func (c Category) Table() string {
	return string(c)
}

// Identity identifies a Telegram user. The whole triple is the key:
// rows are matched on all three fields.
type Identity struct {
	TelegramID    int64  `json:"telegramId" validate:"required,gt=0"`
	TelegramName  string `json:"telegramName" validate:"max=255"`
	TelegramFirst string `json:"telegramFirst" validate:"max=255"`
}

// Subscription is one row of the blocks or transactions table
type Subscription struct {
	ID            uint      `gorm:"primaryKey"`
	TelegramID    int64     `gorm:"column:telegram_id;not null"`
	TelegramName  string    `gorm:"column:telegram_name;not null"`
	TelegramFirst string    `gorm:"column:telegram_first;not null"`
	PublicKey     string    `gorm:"column:public_key;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	// Category is derived from the table the row was read from
	Category Category `gorm:"-"`
}

// Identity returns the identity triple stored on the row
func (s *Subscription) Identity() Identity {
	return Identity{
		TelegramID:    s.TelegramID,
		TelegramName:  s.TelegramName,
		TelegramFirst: s.TelegramFirst,
	}
}
