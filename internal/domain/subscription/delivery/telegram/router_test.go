package telegram

import (
	"context"
	"strings"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/consts"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/dto"
)

type fallbackHolder struct {
	handler tgbot.HandlerFunc
}

func (f *fallbackHolder) SetDefaultHandler(handler tgbot.HandlerFunc) {
	f.handler = handler
}

func (f *fallbackHolder) call(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if f.handler != nil {
		f.handler(ctx, bot, update)
	}
}

func TestRegisterRoutes(t *testing.T) {
	tests := []struct {
		text      string
		wantReply string
	}{
		{text: "/start", wantReply: "Welcome"},
		{text: "/start@MinaAlertsBot", wantReply: "Welcome"},
		{text: "/help", wantReply: "/unsubscribe all"},
		{text: "/help@MinaAlertsBot", wantReply: "/unsubscribe all"},
		{text: "/help please", wantReply: "/unsubscribe all"},
		{text: "/list", wantReply: "You have no subscriptions"},
		{text: "/list@MinaAlertsBot", wantReply: "You have no subscriptions"},
		{text: "/listall", wantReply: "'/listall' is not a valid command"},
		{text: "/unknown", wantReply: "'/unknown' is not a valid command"},
		{text: "hello", wantReply: "I can't recognize you"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			uc := &mockUseCase{
				listFunc: func(context.Context, *dto.ListRequest) (*dto.ListResponse, error) {
					return &dto.ListResponse{MaxPerCategory: 10}, nil
				},
			}
			h, sender, _ := newTestHandlers(uc)

			fallback := &fallbackHolder{}
			bot, err := tgbot.New("123456:test-token", tgbot.WithSkipGetMe(), tgbot.WithDefaultHandler(fallback.call))
			if err != nil {
				t.Fatalf("tgbot.New() error = %v", err)
			}

			NewRouter(h, zerolog.Nop()).RegisterRoutes(bot, fallback)
			bot.ProcessUpdate(context.Background(), update(tt.text))

			if reply := onlyReply(t, sender); !strings.Contains(reply, tt.wantReply) {
				t.Errorf("reply = %q, want it to contain %q", reply, tt.wantReply)
			}
		})
	}
}

func TestMenuCommands(t *testing.T) {
	commands := MenuCommands()

	if len(commands) != len(consts.AllCommands) {
		t.Fatalf("MenuCommands() len = %d, want %d", len(commands), len(consts.AllCommands))
	}
	for i, c := range consts.AllCommands {
		if commands[i].Command != c.Name || commands[i].Description != c.Description {
			t.Errorf("MenuCommands()[%d] = %+v, want %s - %s", i, commands[i], c.Name, c.Description)
		}
	}
	if commands[0].Command != "start" || commands[len(commands)-1].Command != "list" {
		t.Errorf("unexpected menu order %+v", commands)
	}
}
