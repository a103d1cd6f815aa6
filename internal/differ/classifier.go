package differ

// classifier reconciles the original and modified token sequences against
// their LCS to produce the ordered change list.
type classifier struct {
	norm       *normalizer
	trackLines bool
}

func newClassifier(norm *normalizer, granularity Granularity) *classifier {
	return &classifier{
		norm:       norm,
		trackLines: granularity == GranularityLine,
	}
}

// Classify walks three pointers left to right: i over the original tokens,
// j over the modified tokens, and k over the LCS anchors. At each step the
// next unconsumed anchor decides whether the pair is unchanged, one side is
// ahead of the anchor (added/removed), or neither side matches it (a paired
// substitution). Once a side is exhausted the remainder of the other side
// drains as removed or added.
func (c *classifier) Classify(original, modified []string) []ChangeRecord {
	normOriginal := c.norm.NormalizeAll(original)
	normModified := c.norm.NormalizeAll(modified)
	lcs := longestCommonSubsequence(normOriginal, normModified)

	changes := make([]ChangeRecord, 0, max(len(original), len(modified)))
	origLine, modLine := 0, 0
	i, j, k := 0, 0, 0

	for i < len(original) && j < len(modified) {
		anchorAvailable := k < len(lcs)
		switch {
		case anchorAvailable && normOriginal[i] == normModified[j] && normOriginal[i] == lcs[k]:
			origLine++
			modLine++
			changes = append(changes, c.record(ChangeRecord{
				Kind:     ChangeUnchanged,
				Original: original[i],
				Modified: modified[j],
			}, origLine, modLine))
			i++
			j++
			k++
		case anchorAvailable && normOriginal[i] == lcs[k]:
			// The modified side is ahead of the common anchor.
			modLine++
			changes = append(changes, c.record(ChangeRecord{
				Kind:     ChangeAdded,
				Modified: modified[j],
			}, 0, modLine))
			j++
		case anchorAvailable && normModified[j] == lcs[k]:
			origLine++
			changes = append(changes, c.record(ChangeRecord{
				Kind:     ChangeRemoved,
				Original: original[i],
			}, origLine, 0))
			i++
		default:
			origLine++
			modLine++
			changes = append(changes, c.record(ChangeRecord{
				Kind:     ChangeModified,
				Original: original[i],
				Modified: modified[j],
			}, origLine, modLine))
			i++
			j++
		}
	}

	for ; i < len(original); i++ {
		origLine++
		changes = append(changes, c.record(ChangeRecord{
			Kind:     ChangeRemoved,
			Original: original[i],
		}, origLine, 0))
	}
	for ; j < len(modified); j++ {
		modLine++
		changes = append(changes, c.record(ChangeRecord{
			Kind:     ChangeAdded,
			Modified: modified[j],
		}, 0, modLine))
	}

	return changes
}

// record stamps line positions onto a change when line tracking is active.
func (c *classifier) record(change ChangeRecord, origLine, modLine int) ChangeRecord {
	if c.trackLines {
		change.OriginalLine = origLine
		change.ModifiedLine = modLine
	}
	return change
}
