package differ

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccardIndex_Conventions(t *testing.T) {
	assert.Equal(t, 1.0, jaccardIndex(nil, nil))
	assert.Equal(t, 0.0, jaccardIndex([]string{"a"}, nil))
	assert.Equal(t, 0.0, jaccardIndex(nil, []string{"a"}))
	assert.Equal(t, 1.0, jaccardIndex([]string{"a", "b"}, []string{"b", "a"}))
	assert.Equal(t, 0.5, jaccardIndex([]string{"a", "b", "c"}, []string{"a", "b", "d"}))
}

func TestExtractWords(t *testing.T) {
	assert.Equal(t, []string{"the", "quick", "fox"}, extractWords("The quick, quick fox!"))
	assert.Empty(t, extractWords("!!! ---"))
}

func TestSemanticScorer_KnownScore(t *testing.T) {
	scorer := newSemanticScorer(0.5)
	change := &ChangeRecord{
		Kind:     ChangeModified,
		Original: "The quick fox",
		Modified: "The fast fox",
	}

	scorer.Annotate(change)

	require.NotNil(t, change.Similarity)
	// Jaccard = 2/4, length ratio = 12/13.
	expected := 0.7*0.5 + 0.3*(12.0/13.0)
	assert.InDelta(t, expected, *change.Similarity, 1e-9)
	assert.Equal(t, []string{"fast"}, change.KeyWords.Added)
	assert.Equal(t, []string{"quick"}, change.KeyWords.Removed)
}

func TestSemanticScorer_EmptyPair(t *testing.T) {
	scorer := newSemanticScorer(0.5)
	change := &ChangeRecord{Kind: ChangeModified}

	scorer.Annotate(change)

	require.NotNil(t, change.Similarity)
	assert.Equal(t, 1.0, *change.Similarity)
}

func TestSemanticScorer_ExplanationThresholdGate(t *testing.T) {
	highScorer := newSemanticScorer(0.1)
	lowScorer := newSemanticScorer(0.99)

	change := &ChangeRecord{
		Kind:     ChangeModified,
		Original: "The quick fox",
		Modified: "The fast fox",
	}

	rewording := *change
	highScorer.Annotate(&rewording)
	assert.Contains(t, rewording.Explanation, "reworded")
	assert.Contains(t, rewording.Explanation, "fast")

	significant := *change
	lowScorer.Annotate(&significant)
	assert.Contains(t, significant.Explanation, "significantly")
}

func TestSemanticScorer_SignificantNamesUpToTwoWords(t *testing.T) {
	scorer := newSemanticScorer(0.99)
	change := &ChangeRecord{
		Kind:     ChangeModified,
		Original: "nothing shared here",
		Modified: "completely different wording altogether",
	}

	scorer.Annotate(change)

	assert.Contains(t, change.Explanation, "completely")
	assert.Contains(t, change.Explanation, "different")
	assert.NotContains(t, change.Explanation, "altogether")
}

func TestDifferingKeyWords_CapAndOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&sb, "word%d ", i)
	}

	keyWords := differingKeyWords(extractWords(sb.String()), nil)

	assert.Equal(t, []string{"word0", "word1", "word2", "word3", "word4"}, keyWords)
}

func TestDifferingKeyWords_SkipsShortWords(t *testing.T) {
	keyWords := differingKeyWords([]string{"cat", "the", "elephant"}, nil)
	assert.Equal(t, []string{"elephant"}, keyWords)
}
