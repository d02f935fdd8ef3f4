package slack

// Block Kit payload types, limited to the block shapes the digest uses.
// Reference: https://api.slack.com/block-kit

// Message is a webhook payload: layout blocks plus a plain-text fallback.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a single layout block.
type Block struct {
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
	Elements  []Text `json:"elements,omitempty"`
	Accessory *Image `json:"accessory,omitempty"`
}

// Text is a composition text object (plain_text or mrkdwn).
type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Image is an image element used as a section accessory.
type Image struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

func headerBlock(s string) Block {
	return Block{Type: "header", Text: &Text{Type: "plain_text", Text: s, Emoji: true}}
}

func sectionBlock(markdown string) Block {
	return Block{Type: "section", Text: &Text{Type: "mrkdwn", Text: markdown}}
}

func contextBlock(markdown string) Block {
	return Block{Type: "context", Elements: []Text{{Type: "mrkdwn", Text: markdown}}}
}

func dividerBlock() Block {
	return Block{Type: "divider"}
}
