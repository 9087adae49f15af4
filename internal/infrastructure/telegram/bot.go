// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
)

// RequestTimeout bounds a single Bot API call
const RequestTimeout = 30 * time.Second

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot      *tgbot.Bot
	fallback atomic.Pointer[tgbot.HandlerFunc]
	logger   zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper. Extra options are applied after the default handler.
func NewBot(token string, logger zerolog.Logger, extra ...tgbot.Option) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	b := &Bot{logger: logger}

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(b.defaultHandler),
	}
	opts = append(opts, extra...)

	bot, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	logger.Info().Msg("Telegram bot created successfully")

	return b, nil
}

var _ deps.MessageSender = (*Bot)(nil)

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// SetDefaultHandler sets the handler for updates no route matched
func (b *Bot) SetDefaultHandler(handler tgbot.HandlerFunc) {
	b.fallback.Store(&handler)
}

// SendMessage implements deps.MessageSender
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		return fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := b.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		b.logger.Warn().Int64("chat_id", chatID).Err(err).Msg("Failed to send message")
		return fmt.Errorf("failed to send message: %w", err)
	}

	b.logger.Debug().Int64("chat_id", chatID).Int("text_length", len(text)).Msg("Message sent")
	return nil
}

// SetCommands publishes the command menu shown by Telegram clients
func (b *Bot) SetCommands(ctx context.Context, commands []models.BotCommand) error {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := b.bot.SetMyCommands(reqCtx, &tgbot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	b.logger.Info().Int("commands", len(commands)).Msg("Bot command menu registered")
	return nil
}

// Start starts long polling (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Msg("Starting Telegram bot...")
	b.bot.Start(ctx)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

func (b *Bot) defaultHandler(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if handler := b.fallback.Load(); handler != nil {
		(*handler)(ctx, bot, update)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	if _, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   "Type /help for available commands.",
	}); err != nil {
		b.logger.Warn().Int64("chat_id", chatID).Err(err).Msg("Failed to send fallback reply")
	}
}
