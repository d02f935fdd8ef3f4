package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ainews-digest/internal/model"
)

// DefaultBaseAPI is the public Firebase endpoint for the HN API.
// Docs: https://github.com/HackerNews/API
const DefaultBaseAPI = "https://hacker-news.firebaseio.com/v0"

// Client is a minimal Hacker News API client.
type Client struct {
	baseAPI string
	client  *http.Client
}

// NewClient creates a new Hacker News client. baseAPI should be something like
// "https://hacker-news.firebaseio.com/v0". If empty, it defaults to that.
func NewClient(baseAPI string) *Client {
	if strings.TrimSpace(baseAPI) == "" {
		baseAPI = DefaultBaseAPI
	}
	return &Client{
		baseAPI: strings.TrimRight(baseAPI, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// hnItem mirrors the subset of HN item fields we care about.
type hnItem struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Time        int64  `json:"time"`
	Descendants int    `json:"descendants"`
	Score       int    `json:"score"`
}

// Stories fetches IDs from the named list (top, best, or new) and resolves
// them to stories, up to limit. Individual item failures drop that item only.
func (c *Client) Stories(ctx context.Context, list string, limit int) ([]model.Story, error) {
	endpoint := listEndpoint(list)
	ids, err := c.fetchIDs(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	slog.Info("hackernews: fetching items", "list", endpoint, "count", len(ids))
	return c.itemsByIDs(ctx, ids)
}

// Item fetches a single HN item by ID and converts it into a Story.
func (c *Client) Item(ctx context.Context, id int) (model.Story, error) {
	var zero model.Story
	endpoint := fmt.Sprintf("%s/item/%d.json", c.baseAPI, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, fmt.Errorf("hackernews: item %d status %d", id, resp.StatusCode)
	}
	var it hnItem
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		return zero, err
	}
	if it.ID == 0 {
		return zero, fmt.Errorf("hackernews: item %d not found", id)
	}
	return convertItem(it), nil
}

// fetchIDs loads a list endpoint such as topstories/beststories/newstories.
func (c *Client) fetchIDs(ctx context.Context, list string) ([]int, error) {
	path := fmt.Sprintf("%s/%s.json", c.baseAPI, url.PathEscape(list))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("hackernews: %s status %d", list, resp.StatusCode)
	}
	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// itemsByIDs resolves multiple IDs concurrently into stories.
func (c *Client) itemsByIDs(ctx context.Context, ids []int) ([]model.Story, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	// bounded concurrency
	const maxWorkers = 8
	type result struct {
		idx   int
		story model.Story
		err   error
	}
	out := make([]result, len(ids))
	sem := make(chan struct{}, maxWorkers)
	done := make(chan result, len(ids))
	for i, id := range ids {
		i, id := i, id
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			// Per-item timeout to avoid hanging
			ictx, cancel := context.WithTimeout(ctx, 8*time.Second)
			defer cancel()
			st, err := c.Item(ictx, id)
			done <- result{idx: i, story: st, err: err}
		}()
	}
	failed := 0
	for i := 0; i < len(ids); i++ {
		r := <-done
		if r.err != nil {
			// item unavailable; drop it and continue
			failed++
			continue
		}
		out[r.idx] = r
	}
	if failed > 0 {
		slog.Warn("hackernews: some items failed", "failed", failed, "total", len(ids))
	}
	stories := make([]model.Story, 0, len(ids))
	for _, r := range out {
		if r.story.ID != 0 {
			stories = append(stories, r.story)
		}
	}
	return stories, nil
}

// listEndpoint maps a friendly list name to the API list path.
func listEndpoint(list string) string {
	switch strings.ToLower(strings.TrimSpace(list)) {
	case "best", "beststories":
		return "beststories"
	case "new", "newstories":
		return "newstories"
	default:
		return "topstories"
	}
}

// convertItem maps an hnItem to our Story model.
func convertItem(h hnItem) model.Story {
	var created time.Time
	if h.Time > 0 {
		created = time.Unix(h.Time, 0)
	}
	return model.Story{
		ID:       h.ID,
		Title:    strings.TrimSpace(h.Title),
		URL:      strings.TrimSpace(h.URL),
		By:       h.By,
		Points:   h.Score,
		Comments: h.Descendants,
		Time:     created,
	}
}
