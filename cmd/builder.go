package cmd

import (
	"fmt"
	"strings"
	"time"

	"ainews-digest/internal/ai"
	"ainews-digest/internal/config"
	"ainews-digest/internal/digest"
	"ainews-digest/internal/enrich"
	"ainews-digest/internal/hackernews"
	"ainews-digest/internal/relevance"
	"ainews-digest/internal/slack"
)

// newBuilder wires the digest pipeline from configuration. When
// requireWebhook is set, a missing webhook URL is a configuration error and
// nothing is constructed, so the run aborts before any network call.
func newBuilder(cfg config.Config, requireWebhook bool) (*digest.Builder, error) {
	if requireWebhook && strings.TrimSpace(cfg.Slack.WebhookURL) == "" {
		return nil, fmt.Errorf("slack webhook URL not configured: set slack.webhook_url or SLACK_WEBHOOK_URL")
	}

	table, err := loadSignals(cfg)
	if err != nil {
		return nil, err
	}

	window, err := time.ParseDuration(cfg.Digest.RecencyWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid digest.recency_window: %w", err)
	}
	enrichTimeout, err := time.ParseDuration(cfg.Enrich.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid enrich.timeout: %w", err)
	}
	slackTimeout, err := time.ParseDuration(cfg.Slack.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid slack.timeout: %w", err)
	}

	var summarizer ai.Summarizer
	if cfg.OpenAI.APIKey != "" {
		summarizer = ai.NewOpenAI(ai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
	}

	return &digest.Builder{
		HN:            hackernews.NewClient(cfg.HN.BaseAPI),
		Table:         table,
		Enricher:      enrich.New(enrichTimeout),
		Publisher:     slack.NewWebhook(cfg.Slack.WebhookURL, slackTimeout),
		Summarizer:    summarizer,
		List:          cfg.HN.List,
		FetchLimit:    cfg.HN.FetchLimit,
		TopN:          cfg.Digest.TopN,
		RecencyWindow: window,
		Language:      cfg.Digest.Language,
	}, nil
}

func loadSignals(cfg config.Config) (*relevance.Table, error) {
	if p := strings.TrimSpace(cfg.Digest.SignalsFile); p != "" {
		return relevance.LoadFile(p)
	}
	return relevance.Default()
}
