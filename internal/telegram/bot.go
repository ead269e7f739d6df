package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kindwords/internal/analytics"
	"kindwords/internal/compliments"
	"kindwords/internal/conversation"
)

// recorder is the interaction-recording seam; failures stay on its side.
type recorder interface {
	Record(user analytics.User, action string, opts analytics.RecordOpts)
}

// statsProvider serves the /stats command.
type statsProvider interface {
	UserOverview(userID int64) (analytics.UserOverview, error)
	DailyStats(date string) (analytics.DailySnapshot, error)
}

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	ctrl        *conversation.Controller
	rec         recorder
	stats       statsProvider
	compliments *compliments.Catalog
	parseMode   string
	adminUserID int64
}

func New(botToken string, ctrl *conversation.Controller, rec recorder, stats statsProvider, catalog *compliments.Catalog, parseMode string, adminUserID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		ctrl:        ctrl,
		rec:         rec,
		stats:       stats,
		compliments: catalog,
		parseMode:   parseMode,
		adminUserID: adminUserID,
	}, nil
}

// Start runs the long-poll loop until the updates channel closes. Updates
// arrive one at a time; there is no worker pool.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("bot started, listening for updates")

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
			continue
		}
		if update.CallbackQuery != nil {
			b.handleCallback(ctx, update.CallbackQuery)
			continue
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	b.handleText(msg)
}

// NotifyAdmin sends text to the configured admin user, if any. Used by the
// daily stats snapshot job.
func (b *Bot) NotifyAdmin(text string) {
	if b.adminUserID == 0 {
		return
	}
	b.sendMessage(b.adminUserID, text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.sendWithMarkup(chatID, text, nil)
}

func (b *Bot) sendWithMarkup(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.EditMessageTextConfig
	if kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	edit.ParseMode = b.parseMode
	if _, err := b.s.Send(edit); err != nil {
		log.Printf("failed to edit message: %v", err)
	}
}

func userOf(u *tgbotapi.User) analytics.User {
	return analytics.User{
		ID:        u.ID,
		Username:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
