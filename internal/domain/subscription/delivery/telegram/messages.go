package telegram

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/consts"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/dto"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/entities"
	suberrors "github.com/Conte777/MinaAlerts/internal/domain/subscription/errors"
	pkgerrors "github.com/Conte777/MinaAlerts/pkg/errors"
)

const (
	msgWelcome = "Welcome to Mina Alerts!\nType /help for available commands."

	msgSubscribeUsage   = "To subscribe, type <code>/subscribe &lt;blocks|transactions&gt; &lt;public key&gt;</code>"
	msgUnsubscribeUsage = "To unsubscribe, type <code>/unsubscribe &lt;blocks|transactions&gt; &lt;public key&gt;</code>"
	msgUnsubscribeAll   = "To unsubscribe from all alerts, type <code>/unsubscribe all</code>"

	msgTryAgain = "Something went wrong on our side. Please try again later."
)

// helpMessage lists the available commands
func helpMessage(maxSubs int) string {
	var b strings.Builder
	b.WriteString("<b>Available commands:</b>\n")
	b.WriteString("/subscribe blocks &lt;public key&gt; - alerts on block production for a key\n")
	b.WriteString("/subscribe transactions &lt;public key&gt; - alerts on transactions of a key\n")
	b.WriteString("/unsubscribe &lt;blocks|transactions&gt; &lt;public key&gt; - stop alerts for a key\n")
	b.WriteString("/unsubscribe all - stop all alerts\n")
	b.WriteString("/list - show your subscriptions\n")
	fmt.Fprintf(&b, "\nYou can follow up to %d keys per category.", maxSubs)
	return b.String()
}

func subscribedMessage(resp *dto.SubscribeResponse) string {
	return fmt.Sprintf("Successfully subscribed to %s alerts for <code>%s</code>",
		resp.Category, html.EscapeString(resp.PublicKey))
}

func unsubscribedMessage(resp *dto.UnsubscribeResponse) string {
	if resp.All {
		return "Successfully unsubscribed from all alerts"
	}
	return fmt.Sprintf("Successfully unsubscribed from %s alerts for <code>%s</code>",
		resp.Category, html.EscapeString(resp.PublicKey))
}

func listMessage(resp *dto.ListResponse) string {
	if len(resp.Subscriptions) == 0 {
		return "You have no subscriptions yet.\n" + msgSubscribeUsage
	}

	byCategory := make(map[entities.Category][]dto.SubscriptionItem)
	for _, item := range resp.Subscriptions {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var b strings.Builder
	b.WriteString("<b>Your subscriptions:</b>\n")
	for _, category := range entities.Categories {
		items := byCategory[category]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n<b>%s</b> (%d/%d)\n", category, len(items), resp.MaxPerCategory)
		for _, item := range items {
			fmt.Fprintf(&b, "• <code>%s</code>\n", html.EscapeString(item.PublicKey))
		}
	}
	return b.String()
}

func unknownCommandMessage(text string) string {
	return fmt.Sprintf("Sorry - '%s' is not a valid command", html.EscapeString(text))
}

func unknownTextMessage(text string) string {
	return fmt.Sprintf("Sorry I can't recognize you, you said '%s'", html.EscapeString(text))
}

// errorMessage renders the reply for a failed subscribe or unsubscribe.
// publicKey and category are the raw user arguments.
func errorMessage(command string, err error, category, publicKey string, maxSubs int) string {
	key := html.EscapeString(publicKey)
	usage := msgSubscribeUsage
	if command == consts.CommandUnsubscribe.Name {
		usage = msgUnsubscribeUsage
	}

	switch {
	case errors.Is(err, suberrors.ErrAlreadySubscribed):
		return fmt.Sprintf("Already subscribed to %s alerts for <code>%s</code>", html.EscapeString(category), key)
	case errors.Is(err, suberrors.ErrQuotaExceeded):
		return fmt.Sprintf("Max number of subscriptions reached: you can follow up to %d keys per category.", maxSubs)
	case errors.Is(err, suberrors.ErrNotSubscribed):
		return fmt.Sprintf("Not subscribed to %s alerts for <code>%s</code>", html.EscapeString(category), key)
	case errors.Is(err, suberrors.ErrNothingToUnsubscribe):
		return "You have no subscriptions to remove."
	case errors.Is(err, suberrors.ErrUnknownCategory):
		return fmt.Sprintf("Unknown category '%s'. Use blocks or transactions.\n%s", html.EscapeString(category), usage)
	case errors.Is(err, suberrors.ErrMalformedRequest):
		if command == consts.CommandUnsubscribe.Name {
			return usage + "\n" + msgUnsubscribeAll
		}
		return usage
	case isKeyError(err):
		return fmt.Sprintf("Invalid public key <code>%s</code>: %s.\n%s", key, err.Error(), usage)
	case pkgerrors.IsValidationError(err):
		return usage
	default:
		return msgTryAgain
	}
}

func isKeyError(err error) bool {
	for _, keyErr := range []error{
		suberrors.ErrBadLength,
		suberrors.ErrBadCharacters,
		suberrors.ErrBadPrefix,
		suberrors.ErrReservedWord,
	} {
		if errors.Is(err, keyErr) {
			return true
		}
	}
	return false
}
