package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"ainews-digest/internal/model"
)

// Summarizer produces an optional one-line overview for a digest.
type Summarizer interface {
	// SummarizeDigest creates a 1-2 sentence overview of the ranked stories
	// in the given language. An empty result is valid.
	SummarizeDigest(ctx context.Context, stories []model.ScoredStory, language string) (string, error)
}

// OpenAIClient implements Summarizer using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	m := cfg.Model
	if m == "" {
		m = openai.GPT3Dot5Turbo
	}
	return &OpenAIClient{client: c, model: m}
}

func (o *OpenAIClient) SummarizeDigest(ctx context.Context, stories []model.ScoredStory, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	if len(stories) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, st := range stories {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "- %s\n", st.Story.Title)
	}
	sys := fmt.Sprintf(`
		Write in %s, return 1-2 sentences (under 60 words) summarizing the common
		thread of today's AI news headlines. Plain text, no links, no lists.
		`, langOrDefault(language))
	user := fmt.Sprintf("Today's headlines:\n%s", b.String())
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		slog.Error("openai: summarize digest error", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
