package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	AdminUserID      int64  `env:"ADMIN_USER"`

	// Generative text service (future integration; templates are used until
	// a model-backed generator is wired in).
	GenAIAPIKey string `env:"GEMINI_API_KEY"`

	// Storage
	DatabasePath        string `env:"ANALYTICS_DB_PATH" envDefault:"data/analytics.db"`
	InteractionsCSVPath string `env:"INTERACTIONS_CSV_PATH" envDefault:"data/user_interactions.csv"`
	ExportDir           string `env:"EXPORT_DIR" envDefault:"exports"`

	// Content
	ComplimentsFilePath string `env:"COMPLIMENTS_FILE_PATH" envDefault:"compliments.json"`

	// Formatting
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"Markdown"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
