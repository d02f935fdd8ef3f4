package rank

import (
	"testing"
	"time"

	"ainews-digest/internal/model"
	"ainews-digest/internal/relevance"
)

func table(t *testing.T) *relevance.Table {
	t.Helper()
	tbl, err := relevance.Default()
	if err != nil {
		t.Fatalf("load signal table: %v", err)
	}
	return tbl
}

func story(id int, title string, points int, at time.Time) model.Story {
	return model.Story{ID: id, Title: title, Points: points, Time: at}
}

func TestEmptyInput(t *testing.T) {
	got := Rank(nil, table(t), time.Now(), Options{TopN: 5})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d items", len(got))
	}
}

func TestRelevanceDominatesPopularity(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		story(1, "Anthropic releases Claude 4", 120, now),
		story(2, "Local bakery opens", 500, now),
	}
	got := Rank(stories, table(t), now, Options{TopN: 5})
	if len(got) != 1 {
		t.Fatalf("expected 1 story, got %d", len(got))
	}
	if got[0].Story.ID != 1 {
		t.Fatalf("expected the Anthropic story, got id %d", got[0].Story.ID)
	}
}

func TestPopularityBreaksTieBand(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		story(1, "OpenAI ships a new model", 40, now),
		story(2, "Anthropic publishes a paper", 900, now),
	}
	got := Rank(stories, table(t), now, Options{TopN: 5})
	if len(got) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(got))
	}
	// Both score 30; within the tie band, higher points win.
	if got[0].Story.ID != 2 {
		t.Fatalf("expected points to break the tie, got id %d first", got[0].Story.ID)
	}
}

func TestRecencyBreaksRemainingTie(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		story(1, "OpenAI announcement one", 100, now.Add(-6*time.Hour)),
		story(2, "OpenAI announcement two", 100, now.Add(-1*time.Hour)),
	}
	got := Rank(stories, table(t), now, Options{TopN: 5})
	if got[0].Story.ID != 2 {
		t.Fatalf("expected the newer story first, got id %d", got[0].Story.ID)
	}
}

func TestOldStoriesExcluded(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		story(1, "OpenAI launches GPT-5", 999, now.Add(-25*time.Hour)),
	}
	got := Rank(stories, table(t), now, Options{TopN: 5, RecencyWindow: 24 * time.Hour})
	if len(got) != 0 {
		t.Fatalf("story older than the window must be dropped, got %d", len(got))
	}
}

func TestMissingTimeCountsAsRecent(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		{ID: 1, Title: "Anthropic releases Claude 4", Points: 10},
	}
	got := Rank(stories, table(t), now, Options{TopN: 5})
	if len(got) != 1 {
		t.Fatalf("story without a timestamp must be kept, got %d", len(got))
	}
	if !got[0].Recent {
		t.Fatalf("missing timestamp should mark the story recent")
	}
}

func TestUntitledDropped(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		{ID: 1, URL: "https://openai.com/blog/x", Points: 50, Time: now},
	}
	if got := Rank(stories, table(t), now, Options{TopN: 5}); len(got) != 0 {
		t.Fatalf("untitled stories must be dropped, got %d", len(got))
	}
}

func TestCapRespected(t *testing.T) {
	now := time.Now()
	var stories []model.Story
	for i := 0; i < 20; i++ {
		stories = append(stories, story(i, "OpenAI update", i, now))
	}
	got := Rank(stories, table(t), now, Options{TopN: 5})
	if len(got) != 5 {
		t.Fatalf("cap not respected: got %d", len(got))
	}
}

func TestCompositeKeyNonIncreasing(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		story(1, "OpenAI launches GPT-5", 10, now.Add(-2*time.Hour)),
		story(2, "A machine learning retrospective", 300, now.Add(-3*time.Hour)),
		story(3, "AI and LLM and AGI notes", 50, now.Add(-1*time.Hour)),
		story(4, "Anthropic releases Claude 4", 80, now),
		story(5, "Deep learning for birdsong", 40, now.Add(-10*time.Hour)),
	}
	got := Rank(stories, table(t), now, Options{TopN: 10})
	for i := 1; i < len(got); i++ {
		if less(got[i-1], got[i]) {
			t.Fatalf("ordering violated at %d: %+v before %+v", i, got[i-1], got[i])
		}
	}
}

func TestNegativePointsSortLast(t *testing.T) {
	now := time.Now()
	stories := []model.Story{
		story(1, "OpenAI story a", -2, now),
		story(2, "OpenAI story b", 0, now),
	}
	got := Rank(stories, table(t), now, Options{TopN: 5})
	if got[len(got)-1].Story.ID != 1 {
		t.Fatalf("negative points must sort last")
	}
}
