package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ainews-digest/internal/model"
)

func sampleStories() []model.ScoredStory {
	return []model.ScoredStory{
		{
			Story:     model.Story{ID: 101, Title: "Anthropic releases Claude 4", URL: "https://www.anthropic.com/news", Points: 120, Comments: 45},
			Relevance: 30,
			Meta:      model.Metadata{Image: "https://img.example/claude.png", Description: "A new model"},
		},
		{
			Story:     model.Story{ID: 102, Title: "Ask HN: favorite ML papers?", Points: 80, Comments: 200},
			Relevance: 20,
		},
	}
}

func TestComposeLayout(t *testing.T) {
	msg := Compose(sampleStories(), "")
	// header, divider, section, divider, section
	types := make([]string, 0, len(msg.Blocks))
	for _, b := range msg.Blocks {
		types = append(types, b.Type)
	}
	want := []string{"header", "divider", "section", "divider", "section"}
	if len(types) != len(want) {
		t.Fatalf("block types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("block types = %v, want %v", types, want)
		}
	}
	if msg.Blocks[len(msg.Blocks)-1].Type == "divider" {
		t.Fatalf("trailing divider after the last story")
	}
	if msg.Text == "" {
		t.Fatalf("fallback text must not be empty")
	}
}

func TestComposeOverviewContext(t *testing.T) {
	msg := Compose(sampleStories(), "Busy day in model land.")
	if msg.Blocks[1].Type != "context" {
		t.Fatalf("expected context block after header, got %q", msg.Blocks[1].Type)
	}
	if msg.Blocks[1].Elements[0].Text != "Busy day in model land." {
		t.Fatalf("overview text lost")
	}
}

func TestComposeImageAccessory(t *testing.T) {
	msg := Compose(sampleStories(), "")
	withImage := msg.Blocks[2]
	if withImage.Accessory == nil || withImage.Accessory.ImageURL != "https://img.example/claude.png" {
		t.Fatalf("image accessory missing: %+v", withImage)
	}
	noImage := msg.Blocks[4]
	if noImage.Accessory != nil {
		t.Fatalf("unexpected accessory on story without metadata")
	}
}

func TestComposeDomainAndPermalink(t *testing.T) {
	msg := Compose(sampleStories(), "")
	first := msg.Blocks[2].Text.Text
	if !strings.Contains(first, "`anthropic.com`") {
		t.Errorf("www prefix not stripped: %q", first)
	}
	second := msg.Blocks[4].Text.Text
	if !strings.Contains(second, "`news.ycombinator.com`") {
		t.Errorf("missing platform fallback label: %q", second)
	}
	if !strings.Contains(second, "https://news.ycombinator.com/item?id=102") {
		t.Errorf("missing thread permalink fallback: %q", second)
	}
}

func TestComposeDescriptionItalics(t *testing.T) {
	msg := Compose(sampleStories(), "")
	if !strings.Contains(msg.Blocks[2].Text.Text, "_A new model_") {
		t.Errorf("description not italicized: %q", msg.Blocks[2].Text.Text)
	}
}

func TestComposeEmpty(t *testing.T) {
	msg := Compose(nil, "")
	var sections int
	for _, b := range msg.Blocks {
		if b.Type == "section" {
			sections++
			if !strings.Contains(b.Text.Text, "No AI stories") {
				t.Errorf("unexpected section text %q", b.Text.Text)
			}
		}
	}
	if sections != 1 {
		t.Fatalf("empty digest should have exactly one section, got %d", sections)
	}
}

func TestComposeEscapesMrkdwn(t *testing.T) {
	stories := []model.ScoredStory{{
		Story: model.Story{ID: 1, Title: "Benchmarks: GPT-5 <beta> & friends", Points: 1},
	}}
	msg := Compose(stories, "")
	if !strings.Contains(msg.Blocks[2].Text.Text, "&lt;beta&gt; &amp; friends") {
		t.Errorf("title not escaped: %q", msg.Blocks[2].Text.Text)
	}
}

func TestWebhookPost(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWebhook(srv.URL, time.Second)
	if err := c.Post(context.Background(), Compose(sampleStories(), "")); err != nil {
		t.Fatalf("Post error: %v", err)
	}
	if got.Text == "" || len(got.Blocks) == 0 {
		t.Fatalf("payload lost in transit: %+v", got)
	}
}

func TestWebhookErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewWebhook(srv.URL, time.Second)
	err := c.Post(context.Background(), Message{Text: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "status=400") || !strings.Contains(err.Error(), "invalid_payload") {
		t.Errorf("error missing diagnostics: %v", err)
	}
}

func TestWebhookRequiresURL(t *testing.T) {
	c := NewWebhook("", time.Second)
	if err := c.Post(context.Background(), Message{Text: "x"}); err == nil {
		t.Fatalf("expected configuration error for empty URL")
	}
}
