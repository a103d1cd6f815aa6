package differ

import (
	"fmt"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
)

// Granularity selects the unit into which texts are split before comparison.
type Granularity string

const (
	GranularityCharacter Granularity = "character"
	GranularityWord      Granularity = "word"
	GranularityLine      Granularity = "line"
	GranularitySentence  Granularity = "sentence"
	GranularityParagraph Granularity = "paragraph"
)

// IsValid reports whether g is one of the supported granularities.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityCharacter, GranularityWord, GranularityLine, GranularitySentence, GranularityParagraph:
		return true
	}
	return false
}

// ParseGranularity converts a string into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.IsValid() {
		return "", errorwrapper.NewValidationError("granularity", s, "must be one of character, word, line, sentence, paragraph")
	}
	return g, nil
}

// Options controls a single comparison.
type Options struct {
	Granularity         Granularity `json:"granularity" yaml:"granularity"`
	IgnoreWhitespace    bool        `json:"ignore_whitespace" yaml:"ignore_whitespace"`
	IgnoreCase          bool        `json:"ignore_case" yaml:"ignore_case"`
	SemanticAnalysis    bool        `json:"semantic_analysis" yaml:"semantic_analysis"`
	SimilarityThreshold float64     `json:"similarity_threshold" yaml:"similarity_threshold"`
}

// DefaultOptions returns the default comparison options.
func DefaultOptions() Options {
	return Options{
		Granularity:         GranularityLine,
		IgnoreWhitespace:    false,
		IgnoreCase:          false,
		SemanticAnalysis:    false,
		SimilarityThreshold: 0.5,
	}
}

// FingerprintKey returns the option subset that affects comparison output,
// rendered as a stable string. Callers that memoize results include it in
// their cache keys.
func (o Options) FingerprintKey() string {
	key := string(o.Granularity)
	if o.IgnoreWhitespace {
		key += "|ws"
	}
	if o.IgnoreCase {
		key += "|case"
	}
	if o.SemanticAnalysis {
		key += fmt.Sprintf("|sem:%.3f", o.SimilarityThreshold)
	}
	return key
}
