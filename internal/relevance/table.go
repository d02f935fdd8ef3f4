package relevance

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Threshold is the minimum score for a story to count as on-topic.
const Threshold = 10

// maxScore caps the accumulated points.
const maxScore = 100

// Signal is a single keyword or phrase. WholeWord signals only match as a
// standalone token, so "ai" does not fire inside "said" or "paid".
type Signal struct {
	Phrase    string `yaml:"phrase"`
	WholeWord bool   `yaml:"whole_word,omitempty"`

	re *regexp.Regexp // compiled for whole-word signals
}

// Tier groups signals of equal confidence. A decisive tier short-circuits:
// its first match is returned without consulting the remaining tiers.
type Tier struct {
	Name     string   `yaml:"name"`
	Points   int      `yaml:"points"`
	Decisive bool     `yaml:"decisive,omitempty"`
	Signals  []Signal `yaml:"signals"`
}

// Table is the full signal configuration, evaluated tier by tier in order.
type Table struct {
	Tiers []Tier `yaml:"tiers"`
}

//go:embed signals.yaml
var embeddedSignals []byte

// Default returns the embedded signal table.
func Default() (*Table, error) {
	return parse(embeddedSignals)
}

// LoadFile reads a signal table from an external YAML file with the same
// schema as the embedded one.
func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signals file: %w", err)
	}
	return parse(b)
}

func parse(b []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse signals: %w", err)
	}
	if len(t.Tiers) == 0 {
		return nil, fmt.Errorf("parse signals: no tiers defined")
	}
	for i := range t.Tiers {
		tier := &t.Tiers[i]
		if tier.Points <= 0 {
			return nil, fmt.Errorf("parse signals: tier %q has no points", tier.Name)
		}
		for j := range tier.Signals {
			s := &tier.Signals[j]
			s.Phrase = strings.ToLower(strings.TrimSpace(s.Phrase))
			if s.Phrase == "" {
				return nil, fmt.Errorf("parse signals: empty phrase in tier %q", tier.Name)
			}
			if s.WholeWord {
				re, err := regexp.Compile(`\b` + regexp.QuoteMeta(s.Phrase) + `\b`)
				if err != nil {
					return nil, fmt.Errorf("parse signals: phrase %q: %w", s.Phrase, err)
				}
				s.re = re
			}
		}
	}
	return &t, nil
}

func (s *Signal) matches(haystack string) bool {
	if s.re != nil {
		return s.re.MatchString(haystack)
	}
	return strings.Contains(haystack, s.Phrase)
}

// Score classifies a story by title and URL and returns a value in [0,100].
// It is a pure function of its inputs.
func (t *Table) Score(title, url string) int {
	haystack := strings.ToLower(title + " " + url)
	total := 0
	for _, tier := range t.Tiers {
		for i := range tier.Signals {
			if !tier.Signals[i].matches(haystack) {
				continue
			}
			total += tier.Points
			if tier.Decisive {
				// A single unambiguous signal is sufficient on its own.
				return capScore(total)
			}
		}
	}
	return capScore(total)
}

// Relevant reports whether the story scores at or above the threshold.
func (t *Table) Relevant(title, url string) bool {
	return t.Score(title, url) >= Threshold
}

func capScore(n int) int {
	if n > maxScore {
		return maxScore
	}
	return n
}
