package telegram

import (
	"context"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/MinaAlerts/config"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
)

// Module provides Telegram bot for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideBot),
	fx.Provide(func(bot *Bot) deps.MessageSender { return bot }),
)

func provideBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg.BotToken, logger.With().Str("component", "telegram").Logger())
}

// RegisterLifecycle publishes commands and runs long polling between OnStart and OnStop.
// Hooks stop in reverse order, so callers append it after the hooks of everything
// the handlers use.
func RegisterLifecycle(lc fx.Lifecycle, bot *Bot, commands []models.BotCommand) {
	var cancel context.CancelFunc
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if len(commands) > 0 {
				if err := bot.SetCommands(startCtx, commands); err != nil {
					bot.logger.Warn().Err(err).Msg("Failed to register bot command menu")
				}
			}

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			go func() {
				defer close(done)
				_ = bot.Start(ctx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
				select {
				case <-done:
				case <-ctx.Done():
				}
			}
			return bot.Stop()
		},
	})
}
