package enrich

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ainews-digest/internal/model"
)

// maxDescription is the display length cap for scraped descriptions.
const maxDescription = 200

// Enricher fetches best-effort page preview metadata (og:image and a
// description) for a story's external link. It never returns an error:
// any failure degrades to empty metadata.
type Enricher struct {
	client  *http.Client
	timeout time.Duration
}

// New creates an Enricher with the given per-fetch timeout ceiling.
func New(timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Enricher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Fetch retrieves metadata for rawURL. Discussion-thread URLs on Hacker News
// itself are skipped; there is nothing external to scrape.
func (e *Enricher) Fetch(ctx context.Context, rawURL string) model.Metadata {
	var empty model.Metadata
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return empty
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return empty
	}
	if host := strings.TrimPrefix(strings.ToLower(u.Host), "www."); host == "news.ycombinator.com" {
		return empty
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return empty
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ainews-digest/1.0)")
	resp, err := e.client.Do(req)
	if err != nil {
		slog.Debug("enrich: fetch failed", "url", rawURL, "err", err)
		return empty
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("enrich: non-success status", "url", rawURL, "status", resp.StatusCode)
		return empty
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return empty
	}
	return extract(doc)
}

// extract pulls the preview image and the richest available description.
func extract(doc *goquery.Document) model.Metadata {
	var m model.Metadata
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		m.Image = strings.TrimSpace(v)
	}
	// Prefer the social-preview tag, then the generic description, then the
	// secondary social-preview tag.
	for _, sel := range []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[name="twitter:description"]`,
	} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if d := strings.TrimSpace(v); d != "" {
				m.Description = truncate(decodeEntities(d), maxDescription)
				break
			}
		}
	}
	return m
}

var entityReplacer = strings.NewReplacer(
	"&quot;", "\"",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&#39;", "'",
	"&apos;", "'",
)

// decodeEntities unescapes the handful of entities that survive attribute
// parsing when pages double-escape their meta content.
func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
