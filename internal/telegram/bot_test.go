package telegram

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kindwords/internal/analytics"
	"kindwords/internal/compliments"
	"kindwords/internal/conversation"
	"kindwords/internal/generator"
)

type fakeSender struct{ sent []string }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.sent = append(f.sent, m.Text)
	case tgbotapi.EditMessageTextConfig:
		f.sent = append(f.sent, m.Text)
	default:
		f.sent = append(f.sent, "")
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fakeRecorder struct {
	records []analytics.Interaction
}

func (r *fakeRecorder) Record(user analytics.User, action string, opts analytics.RecordOpts) {
	r.records = append(r.records, analytics.Interaction{
		UserID:           user.ID,
		Action:           action,
		RecipientName:    opts.RecipientName,
		MoodChoice:       opts.MoodChoice,
		MessageGenerated: opts.MessageGenerated,
	})
}

type fakeStats struct {
	user  analytics.UserOverview
	daily analytics.DailySnapshot
}

func (s fakeStats) UserOverview(int64) (analytics.UserOverview, error) { return s.user, nil }
func (s fakeStats) DailyStats(string) (analytics.DailySnapshot, error) { return s.daily, nil }

func newTestBot(rec *fakeRecorder) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	b := &Bot{
		s:           fs,
		ctrl:        conversation.New(generator.NewTemplate(), rec),
		rec:         rec,
		stats:       fakeStats{},
		compliments: compliments.Load("does-not-exist.json"),
		parseMode:   "Markdown",
	}
	return b, fs
}

func command(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From:     &tgbotapi.User{ID: userID, FirstName: "Taylor"},
		Chat:     &tgbotapi.Chat{ID: 100},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}
}

func plainText(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, FirstName: "Taylor"},
		Chat: &tgbotapi.Chat{ID: 100},
		Text: text,
	}
}

func callback(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: userID, FirstName: "Taylor"},
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 100}},
		Data:    data,
	}
}

func TestCreateFlowEndToEnd(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)
	ctx := context.Background()

	b.handleIncomingMessage(ctx, command(42, "/create"))
	if !strings.Contains(fs.last(), "tell me the name") {
		t.Fatalf("create prompt missing: %q", fs.last())
	}

	b.handleIncomingMessage(ctx, plainText(42, "Alex"))
	if !strings.Contains(fs.last(), "*Alex*") || !strings.Contains(fs.last(), "mood theme") {
		t.Fatalf("mood prompt missing: %q", fs.last())
	}

	b.handleCallback(ctx, callback(42, "mood_congrats"))
	final := fs.last()
	if !strings.Contains(final, "Alex") {
		t.Fatalf("final reply missing recipient: %q", final)
	}
	if !strings.Contains(final, "Congratulations") {
		t.Fatalf("final reply missing theme label: %q", final)
	}

	// Exactly four records for one full flow.
	if len(rec.records) != 4 {
		actions := make([]string, len(rec.records))
		for i, r := range rec.records {
			actions[i] = r.Action
		}
		t.Fatalf("expected 4 records, got %v", actions)
	}
	last := rec.records[3]
	if last.Action != analytics.ActionMessageGenerated || !last.MessageGenerated || last.MoodChoice != "congrats" {
		t.Fatalf("final record: %+v", last)
	}
}

func TestTextWithoutSessionPromptsCreate(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)

	b.handleIncomingMessage(context.Background(), plainText(7, "hello there"))
	if !strings.Contains(fs.last(), "/create") {
		t.Fatalf("expected create hint: %q", fs.last())
	}
	if len(rec.records) != 1 || rec.records[0].Action != analytics.ActionNoSession {
		t.Fatalf("records: %+v", rec.records)
	}
}

func TestMoodCallbackWithoutSessionExpires(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)

	b.handleCallback(context.Background(), callback(9, "mood_uplift"))
	if !strings.Contains(fs.last(), "Session expired") {
		t.Fatalf("expected expiry notice: %q", fs.last())
	}
}

func TestRegenerateProducesSecondMessage(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)
	ctx := context.Background()

	b.handleIncomingMessage(ctx, command(4, "/create"))
	b.handleIncomingMessage(ctx, plainText(4, "Kim"))
	b.handleCallback(ctx, callback(4, "mood_support"))
	b.handleCallback(ctx, callback(4, "regenerate"))

	if !strings.Contains(fs.last(), "Kim") {
		t.Fatalf("regenerated reply missing recipient: %q", fs.last())
	}
	actions := []string{rec.records[len(rec.records)-2].Action, rec.records[len(rec.records)-1].Action}
	if actions[0] != analytics.ActionMessageRegenerated || actions[1] != analytics.ActionMessageGenerated {
		t.Fatalf("regeneration records: %v", actions)
	}
}

func TestStartCommandSendsMenu(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)

	b.handleIncomingMessage(context.Background(), command(1, "/start"))
	if !strings.Contains(fs.last(), "Welcome to KindWords, Taylor") {
		t.Fatalf("welcome missing: %q", fs.last())
	}
	if len(rec.records) != 1 || rec.records[0].Action != analytics.ActionStartCommand {
		t.Fatalf("records: %+v", rec.records)
	}
}

func TestComplimentCommand(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)

	b.handleIncomingMessage(context.Background(), command(2, "/compliment"))
	if !strings.Contains(fs.last(), "compliment for you, Taylor") {
		t.Fatalf("compliment missing: %q", fs.last())
	}
	if rec.records[0].Action != analytics.ActionComplimentCommand {
		t.Fatalf("records: %+v", rec.records)
	}
}

func TestStatsTextAlwaysIncludesFavoriteMoodLine(t *testing.T) {
	// No favorite mood: the line still prints, on its own line.
	text := statsText(analytics.UserOverview{TotalInteractions: 2}, analytics.DailySnapshot{})
	if !strings.Contains(text, "• Favorite mood: None yet\n") {
		t.Fatalf("favorite mood line malformed: %q", text)
	}
	if !strings.Contains(text, "• Popular mood: None yet") {
		t.Fatalf("popular mood line malformed: %q", text)
	}

	// With a favorite mood the theme label and count show.
	text = statsText(analytics.UserOverview{FavoriteMood: "congrats", FavoriteMoodCount: 3},
		analytics.DailySnapshot{MostPopularMood: "uplift"})
	if !strings.Contains(text, "🎉 Congratulations (3 times)") {
		t.Fatalf("favorite mood label missing: %q", text)
	}
	if !strings.Contains(text, "🌸 Uplift") {
		t.Fatalf("popular mood label missing: %q", text)
	}
}

func TestStatsCommandSendsStats(t *testing.T) {
	rec := &fakeRecorder{}
	b, fs := newTestBot(rec)
	b.stats = fakeStats{
		user:  analytics.UserOverview{TotalInteractions: 5, MessagesCreated: 2},
		daily: analytics.DailySnapshot{UniqueUsers: 3, MessagesGenerated: 1},
	}

	b.handleIncomingMessage(context.Background(), command(3, "/stats"))
	out := fs.last()
	if !strings.Contains(out, "Total interactions: 5") || !strings.Contains(out, "Active users: 3") {
		t.Fatalf("stats text: %q", out)
	}
}
