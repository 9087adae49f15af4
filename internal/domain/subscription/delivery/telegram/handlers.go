// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/consts"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/dto"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/entities"
	pkgerrors "github.com/Conte777/MinaAlerts/pkg/errors"
)

const outcomeSuccess = "success"

// Handlers contains Telegram command handlers
type Handlers struct {
	uc      deps.SubscriptionUseCase
	sender  deps.MessageSender
	metrics deps.MetricsRecorder
	logger  zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(
	uc deps.SubscriptionUseCase,
	sender deps.MessageSender,
	metrics deps.MetricsRecorder,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		uc:      uc,
		sender:  sender,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg, ok := message(update)
	if !ok {
		return
	}

	if command, _ := parseCommand(msg.Text); command != consts.CommandStart.Name {
		h.HandleDefault(ctx, bot, update)
		return
	}

	h.reply(ctx, msg.Chat.ID, msgWelcome)
	h.done(msg, consts.CommandStart.Name, outcomeSuccess)
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg, ok := message(update)
	if !ok {
		return
	}

	if command, _ := parseCommand(msg.Text); command != consts.CommandHelp.Name {
		h.HandleDefault(ctx, bot, update)
		return
	}

	h.reply(ctx, msg.Chat.ID, helpMessage(h.uc.MaxSubscriptions()))
	h.done(msg, consts.CommandHelp.Name, outcomeSuccess)
}

// HandleSubscribe handles /subscribe <category> <public_key>
func (h *Handlers) HandleSubscribe(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg, ok := message(update)
	if !ok {
		return
	}

	command, args := parseCommand(msg.Text)
	if command != consts.CommandSubscribe.Name {
		h.HandleDefault(ctx, bot, update)
		return
	}

	if len(args) != 2 {
		h.reply(ctx, msg.Chat.ID, msgSubscribeUsage)
		h.done(msg, command, pkgerrors.ErrorTypeValidation.String())
		return
	}

	resp, err := h.uc.Subscribe(ctx, &dto.SubscribeRequest{
		Identity:  identity(msg),
		Category:  args[0],
		PublicKey: args[1],
	})
	if err != nil {
		h.reply(ctx, msg.Chat.ID, errorMessage(command, err, args[0], args[1], h.uc.MaxSubscriptions()))
		h.failed(msg, command, err)
		return
	}

	h.reply(ctx, msg.Chat.ID, subscribedMessage(resp))
	h.done(msg, command, outcomeSuccess)
}

// HandleUnsubscribe handles /unsubscribe <category> <public_key> and /unsubscribe all
func (h *Handlers) HandleUnsubscribe(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg, ok := message(update)
	if !ok {
		return
	}

	command, args := parseCommand(msg.Text)
	if command != consts.CommandUnsubscribe.Name {
		h.HandleDefault(ctx, bot, update)
		return
	}

	if len(args) == 0 {
		h.reply(ctx, msg.Chat.ID, msgUnsubscribeUsage+"\n"+msgUnsubscribeAll)
		h.done(msg, command, pkgerrors.ErrorTypeValidation.String())
		return
	}

	resp, err := h.uc.Unsubscribe(ctx, &dto.UnsubscribeRequest{
		Identity: identity(msg),
		Args:     args,
	})
	if err != nil {
		var category, publicKey string
		if len(args) == 2 {
			category, publicKey = args[0], args[1]
		}
		h.reply(ctx, msg.Chat.ID, errorMessage(command, err, category, publicKey, h.uc.MaxSubscriptions()))
		h.failed(msg, command, err)
		return
	}

	h.reply(ctx, msg.Chat.ID, unsubscribedMessage(resp))
	h.done(msg, command, outcomeSuccess)
}

// HandleList handles /list command
func (h *Handlers) HandleList(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg, ok := message(update)
	if !ok {
		return
	}

	if command, _ := parseCommand(msg.Text); command != consts.CommandList.Name {
		h.HandleDefault(ctx, bot, update)
		return
	}

	resp, err := h.uc.List(ctx, &dto.ListRequest{Identity: identity(msg)})
	if err != nil {
		h.reply(ctx, msg.Chat.ID, msgTryAgain)
		h.failed(msg, consts.CommandList.Name, err)
		return
	}

	h.reply(ctx, msg.Chat.ID, listMessage(resp))
	h.done(msg, consts.CommandList.Name, outcomeSuccess)
}

// HandleDefault replies to text no route matched
func (h *Handlers) HandleDefault(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg, ok := message(update)
	if !ok {
		return
	}

	if strings.HasPrefix(msg.Text, "/") {
		h.reply(ctx, msg.Chat.ID, unknownCommandMessage(msg.Text))
		h.done(msg, "unknown", "unknown_command")
		return
	}

	h.reply(ctx, msg.Chat.ID, unknownTextMessage(msg.Text))
	h.done(msg, "unknown", "unknown_text")
}

func (h *Handlers) reply(ctx context.Context, chatID int64, text string) {
	if err := h.sender.SendMessage(ctx, chatID, text); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

func (h *Handlers) done(msg *models.Message, command, outcome string) {
	h.metrics.ObserveCommand(command, outcome)
	h.logger.Info().
		Int64("user_id", msg.From.ID).
		Str("command", command).
		Str("result", outcome).
		Msg("Telegram command processed")
}

func (h *Handlers) failed(msg *models.Message, command string, err error) {
	outcome := pkgerrors.TypeOf(err).String()
	h.metrics.ObserveCommand(command, outcome)

	event := h.logger.Info()
	if outcome == pkgerrors.ErrorTypeUnavailable.String() ||
		outcome == pkgerrors.ErrorTypeInternal.String() ||
		outcome == pkgerrors.ErrorTypeUnknown.String() {
		event = h.logger.Error()
	}
	event.Int64("user_id", msg.From.ID).
		Str("command", command).
		Str("result", outcome).
		Err(err).
		Msg("Telegram command failed")
}

// message returns the text message of update, skipping everything else
func message(update *models.Update) (*models.Message, bool) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return nil, false
	}
	return update.Message, true
}

// parseCommand splits "/cmd@bot a b" into "cmd" and its arguments
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}

	command := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(command, '@'); at >= 0 {
		command = command[:at]
	}
	return strings.ToLower(command), fields[1:]
}

func identity(msg *models.Message) entities.Identity {
	return entities.Identity{
		TelegramID:    msg.From.ID,
		TelegramName:  msg.From.Username,
		TelegramFirst: msg.From.FirstName,
	}
}
