package model

import "time"

// Story represents a single trending item fetched from Hacker News.
type Story struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"` // empty for self posts (Ask HN etc.)
	By       string    `json:"by"`
	Points   int       `json:"points"`
	Comments int       `json:"comments"`
	Time     time.Time `json:"time"` // zero value means the field was absent
}

// Metadata holds best-effort page preview data for a story's link.
// Empty fields mean the value was unavailable; that is a valid terminal state.
type Metadata struct {
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// ScoredStory decorates a story with its relevance classification and,
// after enrichment, its page metadata.
type ScoredStory struct {
	Story     Story
	Relevance int // 0-100
	Recent    bool
	Meta      Metadata
}
