package model

// ScraperConfig identifies one third-party bot whose output we parse.
type ScraperConfig struct {
	Name    string `mapstructure:"name"`
	BotID   string `mapstructure:"bot_id"`
	Enabled bool   `mapstructure:"enabled"`
}

// ReminderConfig holds the tuning knobs of the reminder poll loop.
type ReminderConfig struct {
	BatchSize       int `mapstructure:"batch_size"`
	DrainDelayMs    int `mapstructure:"drain_delay_ms"`
	RetryDelayMs    int `mapstructure:"retry_delay_ms"`
	DefaultDelaySec int `mapstructure:"default_delay_s"`
	MinDelaySec     int `mapstructure:"min_delay_s"`
	MaxDelaySec     int `mapstructure:"max_delay_s"`
}

// Config holds the full application configuration, merged from the
// environment and data/config.yaml.
type Config struct {
	BotToken         string
	AppID            string
	LogWebhookURL    string
	DatabasePath     string
	DeveloperUserIDs []string
	GuildIDs         []string
	Scrapers         map[string]ScraperConfig
	Reminder         ReminderConfig
}

// ScraperByBotID returns the enabled scraper config whose bot id matches.
func (c *Config) ScraperByBotID(botID string) (ScraperConfig, bool) {
	for _, sc := range c.Scrapers {
		if sc.BotID == botID && sc.Enabled {
			return sc, true
		}
	}
	return ScraperConfig{}, false
}
