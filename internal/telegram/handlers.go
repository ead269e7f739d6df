package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kindwords/internal/analytics"
	"kindwords/internal/conversation"
	"kindwords/internal/moods"
)

const (
	cbCreateMessage = "create_message"
	cbGetCompliment = "get_compliment"
	cbHelp          = "help"
	cbRegenerate    = "regenerate"
	cbMoodPrefix    = "mood_"
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	user := userOf(msg.From)
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.rec.Record(user, analytics.ActionStartCommand, analytics.RecordOpts{})
		kb := menuKeyboard()
		b.sendWithMarkup(chatID, welcomeText(user.FirstName), &kb)
	case "help":
		b.rec.Record(user, analytics.ActionHelpCommand, analytics.RecordOpts{})
		b.sendMessage(chatID, helpText)
	case "about":
		b.rec.Record(user, analytics.ActionAboutCommand, analytics.RecordOpts{})
		b.sendMessage(chatID, aboutText)
	case "stats":
		b.rec.Record(user, analytics.ActionStatsCommand, analytics.RecordOpts{})
		b.handleStats(user, chatID)
	case "create":
		b.startCreate(user, chatID)
	case "compliment":
		b.rec.Record(user, analytics.ActionComplimentCommand, analytics.RecordOpts{})
		kb := complimentKeyboard()
		b.sendWithMarkup(chatID, b.complimentText(user.FirstName), &kb)
	default:
		b.sendMessage(chatID, "I don't know that command. Use /help to see what I can do! 😊")
	}
}

// startCreate begins the flow; the controller records the interaction.
func (b *Bot) startCreate(user analytics.User, chatID int64) {
	b.ctrl.StartSession(user)
	b.sendMessage(chatID,
		"🌸 Let's create a beautiful message! 🌸\n\n"+
			"First, please tell me the name of the person you'd like to send a kind message to:")
}

// handleText routes free text through the session state machine.
func (b *Bot) handleText(msg *tgbotapi.Message) {
	user := userOf(msg.From)
	chatID := msg.Chat.ID

	s, err := b.ctrl.SubmitText(user, msg.Text)
	switch {
	case errors.Is(err, conversation.ErrNoSession):
		b.sendMessage(chatID, "Please use /create to start creating a message! 😊")
	case errors.Is(err, conversation.ErrUnexpectedInput):
		b.sendMessage(chatID, "Please use the buttons to select options, or use /create to start over! 😊")
	case err != nil:
		log.Printf("failed to handle text from %d: %v", user.ID, err)
	default:
		kb := moodKeyboard()
		b.sendWithMarkup(chatID, fmt.Sprintf(
			"Perfect! I'll create a message for *%s* 💖\n\nNow, please choose the mood theme for your message:",
			s.Recipient), &kb)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if b.api != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("failed to answer callback: %v", err)
		}
	}
	if cb.From == nil || cb.Message == nil {
		return
	}
	user := userOf(cb.From)
	chatID := cb.Message.Chat.ID

	switch data := cb.Data; {
	case data == cbCreateMessage:
		b.startCreate(user, chatID)
	case data == cbGetCompliment:
		b.rec.Record(user, analytics.ActionComplimentCallback, analytics.RecordOpts{})
		kb := complimentKeyboard()
		b.editMessage(chatID, cb.Message.MessageID, b.complimentText(user.FirstName), &kb)
	case data == cbHelp:
		b.rec.Record(user, analytics.ActionHelpCommand, analytics.RecordOpts{})
		b.sendMessage(chatID, helpText)
	case strings.HasPrefix(data, cbMoodPrefix):
		b.handleMoodSelection(ctx, user, chatID, cb.Message.MessageID, strings.TrimPrefix(data, cbMoodPrefix))
	case data == cbRegenerate:
		b.handleRegenerate(ctx, user, chatID, cb.Message.MessageID)
	}
}

func (b *Bot) handleMoodSelection(ctx context.Context, user analytics.User, chatID int64, messageID int, mood string) {
	s := b.ctrl.Session(user.ID)
	if s == nil {
		b.editMessage(chatID, messageID, "Session expired. Please use /create to start over!", nil)
		return
	}

	theme := moods.Resolve(mood)
	b.editMessage(chatID, messageID, fmt.Sprintf(
		"✨ Generating a beautiful %s message for %s...\n\nPlease wait a moment! 🤖💖",
		strings.ToLower(theme.Name), s.Recipient), nil)

	res, err := b.ctrl.SelectMood(ctx, user, mood)
	b.sendResult(chatID, messageID, res, err)
}

func (b *Bot) handleRegenerate(ctx context.Context, user analytics.User, chatID int64, messageID int) {
	res, err := b.ctrl.Regenerate(ctx, user)
	b.sendResult(chatID, messageID, res, err)
}

func (b *Bot) sendResult(chatID int64, messageID int, res *conversation.Result, err error) {
	switch {
	case errors.Is(err, conversation.ErrSessionExpired):
		b.editMessage(chatID, messageID, "Session expired. Please use /create to start over!", nil)
	case err != nil:
		log.Printf("failed to generate message: %v", err)
		b.editMessage(chatID, messageID,
			"😔 Sorry, I encountered an error while generating your message.\n\nPlease try again with /create", nil)
	default:
		kb := resultKeyboard()
		b.editMessage(chatID, messageID, fmt.Sprintf(
			"🌸 *Your Kind Message* 🌸\n\n*For:* %s\n*Theme:* %s %s\n\n_%s_\n\n💝 *Ready to spread some kindness!*",
			res.Recipient, res.Theme.Emoji, res.Theme.Name, res.Text), &kb)
	}
}

// handleStats shows personal plus today's community statistics.
func (b *Bot) handleStats(user analytics.User, chatID int64) {
	overview, err := b.stats.UserOverview(user.ID)
	if err != nil {
		log.Printf("failed to get stats for %d: %v", user.ID, err)
		b.sendMessage(chatID, "Sorry, I couldn't retrieve your statistics right now. Please try again later!")
		return
	}
	today, err := b.stats.DailyStats(time.Now().UTC().Format("2006-01-02"))
	if err != nil {
		log.Printf("failed to get daily stats: %v", err)
		b.sendMessage(chatID, "Sorry, I couldn't retrieve your statistics right now. Please try again later!")
		return
	}
	b.sendMessage(chatID, statsText(overview, today))
}

func statsText(o analytics.UserOverview, today analytics.DailySnapshot) string {
	memberSince := "Today"
	if !o.FirstSeen.IsZero() {
		memberSince = o.FirstSeen.Format("2006-01-02")
	}
	favorite := "None yet"
	if o.FavoriteMood != "" {
		favorite = fmt.Sprintf("%s (%d times)", moodLabelOrKey(o.FavoriteMood), o.FavoriteMoodCount)
	}
	popular := "None yet"
	if today.MostPopularMood != "" {
		popular = moodLabelOrKey(today.MostPopularMood)
	}

	return fmt.Sprintf(
		"📊 *Your KindWords Statistics* 📊\n\n"+
			"👤 *Personal Stats:*\n"+
			"• Total interactions: %d\n"+
			"• Messages created: %d\n"+
			"• Member since: %s\n"+
			"• Favorite mood: %s\n\n"+
			"🌍 *Today's Community:*\n"+
			"• Active users: %d\n"+
			"• Messages created: %d\n"+
			"• Popular mood: %s\n\n"+
			"💖 Keep spreading kindness!",
		o.TotalInteractions, o.MessagesCreated, memberSince, favorite,
		today.UniqueUsers, today.MessagesGenerated, popular)
}

func moodLabelOrKey(key string) string {
	if l := moods.Label(key); l != "" {
		return l
	}
	return key
}

func (b *Bot) complimentText(firstName string) string {
	return fmt.Sprintf(
		"💝 *A gentle compliment for you, %s:*\n\n_%s_\n\n🌸 Remember: You are worthy of love and kindness! 🌸",
		firstName, b.compliments.Random())
}

func welcomeText(firstName string) string {
	return fmt.Sprintf(
		"🌸 Welcome to KindWords, %s! 🌸\n\n"+
			"I'm here to help you create beautiful messages that spread kindness and joy. ✨\n\n"+
			"Use /create to start crafting a personalized message for someone special!\n"+
			"Use /compliment to receive a gentle compliment for yourself!\n"+
			"Use /help to see all available commands.", firstName)
}

const helpText = "🌟 *KindWords Bot Commands* 🌟\n\n" +
	"/start - Welcome message and get started\n" +
	"/create - Create a new kind message\n" +
	"/compliment - Receive a gentle compliment\n" +
	"/help - Show this help message\n" +
	"/about - Learn more about KindWords\n" +
	"/stats - View your usage statistics\n\n" +
	"*How to use:*\n" +
	"1. Use /create to start\n" +
	"2. Enter the recipient's name\n" +
	"3. Choose a mood theme\n" +
	"4. Get your personalized message!\n\n" +
	"Spread kindness, one message at a time! 💖"

const aboutText = "💝 *About KindWords* 💝\n\n" +
	"KindWords helps you create personalized, heartfelt messages to brighten someone's day.\n\n" +
	"🎨 *Personalized* - Every message is tailored to your recipient\n" +
	"💌 *Multiple Themes* - Choose from various mood themes\n" +
	"🌍 *Spread Joy* - Help make the world a kinder place\n\n" +
	"Made with ❤️ for spreading kindness"

func menuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Create Message", cbCreateMessage)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💝 Get Compliment", cbGetCompliment)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", cbHelp)),
	)
}

func complimentKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Another Compliment", cbGetCompliment)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Create Message for Someone", cbCreateMessage)),
	)
}

func resultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Generate Another", cbRegenerate)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Create New Message", cbCreateMessage)),
	)
}

func moodKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(moods.All()))
	for _, th := range moods.All() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(th.Emoji+" "+th.Name, cbMoodPrefix+th.Key)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
