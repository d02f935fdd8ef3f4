package rank

import (
	"sort"
	"time"

	"ainews-digest/internal/model"
	"ainews-digest/internal/relevance"
)

// tieBand is the relevance window within which two scores are treated as
// equal, so minor keyword noise does not outweigh popularity.
const tieBand = 5

// Options tunes the ranking output.
type Options struct {
	TopN          int           // maximum stories returned
	RecencyWindow time.Duration // stories older than this are dropped
}

// Rank filters, scores, and orders candidate stories. The result is capped
// at TopN and sorted descending by (relevance tier, points, recency).
// An empty input yields an empty result, never an error.
func Rank(stories []model.Story, table *relevance.Table, now time.Time, opts Options) []model.ScoredStory {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.RecencyWindow <= 0 {
		opts.RecencyWindow = 24 * time.Hour
	}
	cutoff := now.Add(-opts.RecencyWindow)

	scored := make([]model.ScoredStory, 0, len(stories))
	for _, st := range stories {
		if st.Title == "" {
			continue
		}
		rel := table.Score(st.Title, st.URL)
		// A missing timestamp counts as recent; the source omits it rarely.
		recent := st.Time.IsZero() || !st.Time.Before(cutoff)
		if rel < relevance.Threshold || !recent {
			continue
		}
		scored = append(scored, model.ScoredStory{Story: st, Relevance: rel, Recent: recent})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return less(scored[j], scored[i]) // descending
	})

	if len(scored) > opts.TopN {
		scored = scored[:opts.TopN]
	}
	return scored
}

// less orders by the composite key: relevance outside the tie band first,
// then points, then newer creation time. Missing values sort last.
func less(a, b model.ScoredStory) bool {
	if d := a.Relevance - b.Relevance; d < -tieBand || d > tieBand {
		return d < 0
	}
	if a.Story.Points != b.Story.Points {
		return a.Story.Points < b.Story.Points
	}
	return a.Story.Time.Before(b.Story.Time)
}
