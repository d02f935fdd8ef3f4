package slack

import (
	"fmt"
	"net/url"
	"strings"

	"ainews-digest/internal/model"
)

const (
	hnHost          = "news.ycombinator.com"
	threadPermalink = "https://news.ycombinator.com/item?id=%d"
)

// Compose builds the digest message for a ranked story list. overview, when
// non-empty, is rendered as a context line under the header. An empty list
// yields a single "no stories" section.
func Compose(stories []model.ScoredStory, overview string) Message {
	msg := Message{}
	msg.Blocks = append(msg.Blocks, headerBlock(":robot_face: AI News Digest"))
	if overview = strings.TrimSpace(overview); overview != "" {
		msg.Blocks = append(msg.Blocks, contextBlock(overview))
	}
	msg.Blocks = append(msg.Blocks, dividerBlock())

	if len(stories) == 0 {
		msg.Blocks = append(msg.Blocks, sectionBlock("No AI stories found this time. :zzz:"))
		msg.Text = "AI News Digest: no stories found"
		return msg
	}

	titles := make([]string, 0, len(stories))
	for i, st := range stories {
		msg.Blocks = append(msg.Blocks, storySection(st))
		if st.Meta.Image != "" {
			b := &msg.Blocks[len(msg.Blocks)-1]
			b.Accessory = &Image{Type: "image", ImageURL: st.Meta.Image, AltText: st.Story.Title}
		}
		if i < len(stories)-1 {
			msg.Blocks = append(msg.Blocks, dividerBlock())
		}
		titles = append(titles, st.Story.Title)
	}
	msg.Text = "AI News Digest: " + strings.Join(titles, " | ")
	return msg
}

// storySection renders one story: linked title, source label, stats line,
// and the scraped description in italics when available.
func storySection(st model.ScoredStory) Block {
	link := st.Story.URL
	if link == "" {
		link = fmt.Sprintf(threadPermalink, st.Story.ID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*<%s|%s>*\n", link, escape(st.Story.Title))
	fmt.Fprintf(&b, "`%s` · %d points · %d comments · <%s|discuss>",
		domainLabel(st.Story.URL), st.Story.Points, st.Story.Comments,
		fmt.Sprintf(threadPermalink, st.Story.ID))
	if d := strings.TrimSpace(st.Meta.Description); d != "" {
		fmt.Fprintf(&b, "\n_%s_", escape(d))
	}
	return sectionBlock(b.String())
}

// domainLabel returns the link's host without a leading "www.". Absent or
// unparsable URLs fall back to the platform's own host.
func domainLabel(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return hnHost
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// escape protects the three characters Slack mrkdwn treats specially.
func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
