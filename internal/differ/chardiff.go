package differ

// CharChange is one per-character tag produced by CharDiff.
type CharChange struct {
	Kind ChangeKind `json:"kind"`
	Char string     `json:"char"`
}

// CharDiff compares two texts character by character with a synchronized
// walk: positions are matched by index, not aligned. It is meant for
// fine-grained highlighting of short spans, where the engine's LCS
// machinery would be overkill.
func CharDiff(original, modified string) []CharChange {
	origRunes := []rune(original)
	modRunes := []rune(modified)

	changes := make([]CharChange, 0, max(len(origRunes), len(modRunes)))
	for idx := 0; idx < max(len(origRunes), len(modRunes)); idx++ {
		switch {
		case idx >= len(origRunes):
			changes = append(changes, CharChange{Kind: ChangeAdded, Char: string(modRunes[idx])})
		case idx >= len(modRunes):
			changes = append(changes, CharChange{Kind: ChangeRemoved, Char: string(origRunes[idx])})
		case origRunes[idx] == modRunes[idx]:
			changes = append(changes, CharChange{Kind: ChangeUnchanged, Char: string(origRunes[idx])})
		default:
			changes = append(changes,
				CharChange{Kind: ChangeRemoved, Char: string(origRunes[idx])},
				CharChange{Kind: ChangeAdded, Char: string(modRunes[idx])},
			)
		}
	}
	return changes
}
