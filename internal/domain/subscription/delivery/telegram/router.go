// Package telegram contains Telegram delivery layer
package telegram

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/consts"
)

// DefaultHandlerSetter receives the handler for unmatched updates
type DefaultHandlerSetter interface {
	SetDefaultHandler(handler tgbot.HandlerFunc)
}

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all command handlers on the bot.
// Routes match by prefix so "/cmd@bot" and trailing arguments reach the handler,
// which re-checks the exact command name.
func (r *Router) RegisterRoutes(bot *tgbot.Bot, fallback DefaultHandlerSetter) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, r.handlers.HandleStart)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypePrefix, r.handlers.HandleHelp)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/subscribe", tgbot.MatchTypePrefix, r.handlers.HandleSubscribe)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/unsubscribe", tgbot.MatchTypePrefix, r.handlers.HandleUnsubscribe)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/list", tgbot.MatchTypePrefix, r.handlers.HandleList)
	fallback.SetDefaultHandler(r.handlers.HandleDefault)

	r.logger.Info().Msg("All Telegram command handlers registered successfully")
}

// MenuCommands returns the bot command menu in registration order
func MenuCommands() []models.BotCommand {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, c := range consts.AllCommands {
		commands = append(commands, models.BotCommand{
			Command:     c.Name,
			Description: c.Description,
		})
	}
	return commands
}
