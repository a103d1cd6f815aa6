package differ

import (
	"fmt"
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

const maxKeyWords = 5

// semanticScorer computes a lexical similarity score and an explanation for
// modified pairs. It is a word-overlap heuristic, not a language model.
type semanticScorer struct {
	threshold float64
}

func newSemanticScorer(threshold float64) *semanticScorer {
	return &semanticScorer{threshold: threshold}
}

// Annotate fills the similarity, key words and explanation of a modified
// change record in place.
func (s *semanticScorer) Annotate(change *ChangeRecord) {
	originalWords := extractWords(change.Original)
	modifiedWords := extractWords(change.Modified)

	similarity := s.score(change.Original, change.Modified, originalWords, modifiedWords)
	keyWords := &KeyWords{
		Added:   differingKeyWords(modifiedWords, originalWords),
		Removed: differingKeyWords(originalWords, modifiedWords),
	}

	change.Similarity = &similarity
	change.KeyWords = keyWords
	change.Explanation = s.explain(similarity, keyWords)
}

// score blends lexical overlap with a length ratio:
// 0.7 * Jaccard(words) + 0.3 * (min(len)/max(len)).
func (s *semanticScorer) score(original, modified string, originalWords, modifiedWords []string) float64 {
	jaccard := jaccardIndex(originalWords, modifiedWords)

	minLen, maxLen := len(original), len(modified)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	lengthRatio := 1.0
	if maxLen > 0 {
		lengthRatio = float64(minLen) / float64(maxLen)
	}

	return 0.7*jaccard + 0.3*lengthRatio
}

// explain renders the threshold-gated explanation. Above the threshold the
// pair reads as a rewording and names the first differing key word; below
// it the pair reads as a significant modification naming up to the first
// two added key words.
func (s *semanticScorer) explain(similarity float64, keyWords *KeyWords) string {
	if similarity > s.threshold {
		switch {
		case len(keyWords.Added) > 0:
			return fmt.Sprintf("Text reworded with similar meaning, introducing %q", keyWords.Added[0])
		case len(keyWords.Removed) > 0:
			return fmt.Sprintf("Text reworded with similar meaning, dropping %q", keyWords.Removed[0])
		default:
			return "Text reworded with similar meaning"
		}
	}

	if len(keyWords.Added) > 0 {
		named := keyWords.Added
		if len(named) > 2 {
			named = named[:2]
		}
		return fmt.Sprintf("Text significantly modified, introducing %s", quoteJoin(named))
	}
	return "Text significantly modified"
}

// extractWords returns the lower-cased alphanumeric runs of text in
// insertion order, deduplicated.
func extractWords(text string) []string {
	matches := wordPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	words := make([]string, 0, len(matches))
	for _, m := range matches {
		w := strings.ToLower(m)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// jaccardIndex is |intersection| / |union| over the two word sets, defined
// as 1.0 when both sets are empty and 0.0 when exactly one is.
func jaccardIndex(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	intersection := 0
	union := len(setA)
	seenB := make(map[string]struct{}, len(b))
	for _, w := range b {
		if _, dup := seenB[w]; dup {
			continue
		}
		seenB[w] = struct{}{}
		if _, ok := setA[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

// differingKeyWords returns words longer than three characters present in
// from but not in against, in insertion order, capped at maxKeyWords.
func differingKeyWords(from, against []string) []string {
	exclude := make(map[string]struct{}, len(against))
	for _, w := range against {
		exclude[w] = struct{}{}
	}

	keyWords := make([]string, 0, maxKeyWords)
	for _, w := range from {
		if len(w) <= 3 {
			continue
		}
		if _, ok := exclude[w]; ok {
			continue
		}
		keyWords = append(keyWords, w)
		if len(keyWords) == maxKeyWords {
			break
		}
	}
	return keyWords
}

func quoteJoin(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, " and ")
}
