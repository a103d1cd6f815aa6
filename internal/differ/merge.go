package differ

import "strings"

// MergeDecision selects which side of a change record survives a merge.
type MergeDecision string

const (
	// DecisionAccept keeps the modified side: modified and added records
	// contribute their modified text, removed records are dropped.
	DecisionAccept MergeDecision = "accept"
	// DecisionReject keeps the original side: modified and removed records
	// contribute their original text, added records are dropped.
	DecisionReject MergeDecision = "reject"
	// DecisionBoth keeps both sides where both exist, original first.
	DecisionBoth MergeDecision = "both"
)

// Merge replays a change list and reconstructs a merged text. Decisions are
// keyed by change index; records without an entry follow the default rules:
// unchanged keeps the token, modified and added take the modified side,
// removed is dropped. Tokens are joined with the separator of the
// granularity that produced the change list. Line tokens are produced with
// \r\n folded to \n, so line-level merges rejoin with \n regardless of the
// input's original endings.
func Merge(changes []ChangeRecord, decisions map[int]MergeDecision, granularity Granularity) string {
	tokens := make([]string, 0, len(changes))
	for idx, change := range changes {
		if change.Kind == ChangeUnchanged {
			tokens = append(tokens, change.Original)
			continue
		}

		decision, ok := decisions[idx]
		if !ok {
			decision = DecisionAccept
		}
		tokens = append(tokens, mergeTokens(change, decision)...)
	}
	return strings.Join(tokens, joinSeparator(granularity))
}

func mergeTokens(change ChangeRecord, decision MergeDecision) []string {
	switch decision {
	case DecisionReject:
		switch change.Kind {
		case ChangeModified, ChangeRemoved:
			return []string{change.Original}
		}
		return nil
	case DecisionBoth:
		switch change.Kind {
		case ChangeModified:
			return []string{change.Original, change.Modified}
		case ChangeRemoved:
			return []string{change.Original}
		case ChangeAdded:
			return []string{change.Modified}
		}
		return nil
	default: // DecisionAccept
		switch change.Kind {
		case ChangeModified, ChangeAdded:
			return []string{change.Modified}
		}
		return nil
	}
}

// joinSeparator is the inverse of tokenization, as far as one exists:
// word-level merges cannot recover the exact original whitespace.
func joinSeparator(granularity Granularity) string {
	switch granularity {
	case GranularityCharacter:
		return ""
	case GranularityLine:
		return "\n"
	case GranularityParagraph:
		return "\n\n"
	default:
		return " "
	}
}
