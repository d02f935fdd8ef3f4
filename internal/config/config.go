package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// HNConfig controls the Hacker News data source.
type HNConfig struct {
	BaseAPI    string `mapstructure:"base_api"`
	List       string `mapstructure:"list"`        // top, best, or new
	FetchLimit int    `mapstructure:"fetch_limit"` // how many IDs to resolve per run
}

// SlackConfig holds the publish endpoint. WebhookURL is typically bound to
// the SLACK_WEBHOOK_URL environment variable rather than written to disk.
type SlackConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Timeout    string `mapstructure:"timeout"` // duration string, e.g., "10s"
}

// OpenAIConfig enables the optional digest overview. Empty APIKey disables it.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// DigestConfig controls ranking and scheduling.
type DigestConfig struct {
	TopN          int    `mapstructure:"top_n"`
	RecencyWindow string `mapstructure:"recency_window"` // duration string, e.g., "24h"
	Schedule      string `mapstructure:"schedule"`       // cron expression for serve mode
	SignalsFile   string `mapstructure:"signals_file"`   // optional override of the embedded table
	Language      string `mapstructure:"language"`
}

// EnrichConfig controls page metadata scraping.
type EnrichConfig struct {
	Timeout string `mapstructure:"timeout"` // duration string, e.g., "4s"
}

// Config is the top-level configuration structure.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	HN     HNConfig     `mapstructure:"hackernews"`
	Digest DigestConfig `mapstructure:"digest"`
	Enrich EnrichConfig `mapstructure:"enrich"`
	Slack  SlackConfig  `mapstructure:"slack"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.HN.BaseAPI == "" {
		c.HN.BaseAPI = "https://hacker-news.firebaseio.com/v0"
	}
	if c.HN.List == "" {
		c.HN.List = "top"
	}
	if c.HN.FetchLimit <= 0 {
		c.HN.FetchLimit = 80
	}
	if c.Digest.TopN <= 0 {
		c.Digest.TopN = 5
	}
	if c.Digest.RecencyWindow == "" {
		c.Digest.RecencyWindow = "24h"
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = "@hourly"
	}
	if c.Enrich.Timeout == "" {
		c.Enrich.Timeout = "4s"
	}
	if c.Slack.Timeout == "" {
		c.Slack.Timeout = "10s"
	}
}
