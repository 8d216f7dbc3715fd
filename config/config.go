package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"gacha-helper/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables plus the
// optional data/config.yaml tuning file.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	webhookURL := os.Getenv("LOG_WEBHOOK_URL")
	if webhookURL == "" {
		log.Println("Warning: LOG_WEBHOOK_URL not set, webhook logging will be disabled")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/gacha_helper.db"
	}

	cfg := &model.Config{
		BotToken:         token,
		AppID:            appID,
		LogWebhookURL:    webhookURL,
		DatabasePath:     dbPath,
		DeveloperUserIDs: splitIDs(os.Getenv("DEVELOPER_USER_IDS")),
		GuildIDs:         splitIDs(os.Getenv("GUILD_IDS")),
	}

	if err := loadYAML(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML reads the scraper registry and reminder tuning from
// data/config.yaml. A missing file leaves the defaults in place.
func loadYAML(cfg *model.Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("data")

	v.SetDefault("reminder.batch_size", 20)
	v.SetDefault("reminder.drain_delay_ms", 1500)
	v.SetDefault("reminder.retry_delay_ms", 5000)
	v.SetDefault("reminder.default_delay_s", 60)
	v.SetDefault("reminder.min_delay_s", 2)
	v.SetDefault("reminder.max_delay_s", 300)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Println("Warning: data/config.yaml not found, all scrapers disabled. Copy data/config.yaml.example to enable them.")
	}

	if err := v.UnmarshalKey("scrapers", &cfg.Scrapers); err != nil {
		return err
	}
	if err := v.UnmarshalKey("reminder", &cfg.Reminder); err != nil {
		return err
	}
	return nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
