package differ

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizer folds token text per the comparison options. Normalized text is
// used only for equality checks; the original token text is always what ends
// up in change records.
type normalizer struct {
	ignoreWhitespace bool
	ignoreCase       bool
	lower            cases.Caser
}

// newNormalizer builds a normalizer for one comparison. The caser carries
// internal state, so each Diff invocation gets its own instance.
func newNormalizer(opts Options) *normalizer {
	return &normalizer{
		ignoreWhitespace: opts.IgnoreWhitespace,
		ignoreCase:       opts.IgnoreCase,
		lower:            cases.Lower(language.Und),
	}
}

// Normalize applies whitespace collapsing and case folding to token text.
func (n *normalizer) Normalize(text string) string {
	if n.ignoreWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	}
	if n.ignoreCase {
		text = n.lower.String(text)
	}
	return text
}

// NormalizeAll returns the normalized form of every token.
func (n *normalizer) NormalizeAll(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	normalized := make([]string, len(tokens))
	for i, tok := range tokens {
		normalized[i] = n.Normalize(tok)
	}
	return normalized
}
