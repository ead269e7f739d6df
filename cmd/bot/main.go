package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"kindwords/internal/analytics"
	"kindwords/internal/compliments"
	"kindwords/internal/config"
	"kindwords/internal/conversation"
	"kindwords/internal/generator"
	"kindwords/internal/scheduler"
	"kindwords/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := analytics.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open analytics store: %v", err)
	}
	defer store.Close()

	export, err := analytics.NewCSVExport(cfg.InteractionsCSVPath)
	if err != nil {
		// The CSV leg is best-effort; the bot runs on the store alone.
		log.Printf("failed to init csv export: %v", err)
		export = nil
	}
	logger := analytics.NewLogger(store, export)

	catalog := compliments.Load(cfg.ComplimentsFilePath)

	if cfg.GenAIAPIKey == "" {
		log.Printf("generative backend not configured, using built-in templates")
	} else {
		log.Printf("generative credential present, but the model backend is not wired yet; using built-in templates")
	}
	gen := generator.NewTemplate()

	ctrl := conversation.New(gen, logger)

	bot, err := telegram.New(cfg.TelegramBotToken, ctrl, logger, store, catalog, cfg.MessageParseMode, cfg.AdminUserID)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New()
	sched.SetSnapshotFunction(func(ctx context.Context) error {
		date := time.Now().UTC().Format("2006-01-02")
		snap, err := store.DailyStats(date)
		if err != nil {
			return err
		}
		if err := store.SaveDailySnapshot(snap); err != nil {
			return err
		}
		bot.NotifyAdmin(fmt.Sprintf(
			"📊 Daily summary for %s\nInteractions: %d\nActive users: %d\nMessages created: %d",
			snap.Date, snap.TotalInteractions, snap.UniqueUsers, snap.MessagesGenerated))
		return nil
	})
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Printf("starting KindWords bot with analytics")
	bot.Start(context.Background())
}
