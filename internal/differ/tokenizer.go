package differ

import (
	"regexp"
	"strings"
)

var (
	sentenceBoundary  = regexp.MustCompile(`[.!?]+\s+`)
	paragraphBoundary = regexp.MustCompile(`\n\s*\n`)
)

// Tokenize splits text into the ordered token sequence for the given
// granularity. An empty text always yields no tokens.
func Tokenize(text string, granularity Granularity) []string {
	if text == "" {
		return nil
	}

	switch granularity {
	case GranularityCharacter:
		return tokenizeCharacters(text)
	case GranularityWord:
		return strings.Fields(text)
	case GranularityLine:
		return tokenizeLines(text)
	case GranularitySentence:
		return tokenizeSentences(text)
	case GranularityParagraph:
		return tokenizeParagraphs(text)
	default:
		return tokenizeLines(text)
	}
}

func tokenizeCharacters(text string) []string {
	runes := []rune(text)
	tokens := make([]string, len(runes))
	for i, r := range runes {
		tokens[i] = string(r)
	}
	return tokens
}

// tokenizeLines splits on line breaks, treating \r\n and \n as the same
// delimiter. Trailing empty segments are kept, so a text ending in a line
// break yields a trailing empty token.
func tokenizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// tokenizeSentences splits on runs of terminal punctuation followed by
// whitespace and drops whitespace-only results.
func tokenizeSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	return dropBlank(parts)
}

// tokenizeParagraphs splits on blank-line separators and drops
// whitespace-only results.
func tokenizeParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := paragraphBoundary.Split(text, -1)
	return dropBlank(parts)
}

func dropBlank(parts []string) []string {
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
