package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ainews-digest/internal/ai"
	"ainews-digest/internal/enrich"
	"ainews-digest/internal/hackernews"
	"ainews-digest/internal/model"
	"ainews-digest/internal/rank"
	"ainews-digest/internal/relevance"
	"ainews-digest/internal/slack"
)

// Publisher delivers a composed message. *slack.WebhookClient satisfies it.
type Publisher interface {
	Post(ctx context.Context, msg slack.Message) error
}

// Builder runs the digest pipeline: fetch candidates, score and rank them,
// enrich the winners with page metadata, compose, and publish.
type Builder struct {
	HN         *hackernews.Client
	Table      *relevance.Table
	Enricher   *enrich.Enricher
	Publisher  Publisher
	Summarizer ai.Summarizer // optional; nil disables the overview

	List          string // top, best, or new
	FetchLimit    int
	TopN          int
	RecencyWindow time.Duration
	Language      string
}

// Build assembles the message without publishing it.
func (b *Builder) Build(ctx context.Context) (slack.Message, []model.ScoredStory, error) {
	stories, err := b.HN.Stories(ctx, b.List, b.FetchLimit)
	if err != nil {
		return slack.Message{}, nil, fmt.Errorf("fetch stories: %w", err)
	}
	ranked := rank.Rank(stories, b.Table, time.Now(), rank.Options{
		TopN:          b.TopN,
		RecencyWindow: b.RecencyWindow,
	})
	slog.Info("digest: ranked stories", "candidates", len(stories), "ranked", len(ranked))

	b.enrichAll(ctx, ranked)

	var overview string
	if b.Summarizer != nil && len(ranked) > 0 {
		if s, err := b.Summarizer.SummarizeDigest(ctx, ranked, b.Language); err == nil {
			overview = s
		}
	}
	return slack.Compose(ranked, overview), ranked, nil
}

// Run builds and publishes one digest. A publish failure is surfaced to the
// caller; everything upstream degrades silently.
func (b *Builder) Run(ctx context.Context) error {
	msg, ranked, err := b.Build(ctx)
	if err != nil {
		return err
	}
	if err := b.Publisher.Post(ctx, msg); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}
	slog.Info("digest: published", "stories", len(ranked), "blocks", len(msg.Blocks))
	return nil
}

// enrichAll fetches page metadata for each ranked story concurrently. Each
// goroutine writes only its own slot; failures leave the slot empty.
func (b *Builder) enrichAll(ctx context.Context, ranked []model.ScoredStory) {
	if b.Enricher == nil || len(ranked) == 0 {
		return
	}
	const maxWorkers = 4
	sem := make(chan struct{}, maxWorkers)
	done := make(chan struct{}, len(ranked))
	for i := range ranked {
		i := i
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- struct{}{} }()
			ranked[i].Meta = b.Enricher.Fetch(ctx, ranked[i].Story.URL)
		}()
	}
	for range ranked {
		<-done
	}
}
