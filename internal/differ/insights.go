package differ

// Impact is a coarse rating of how disruptive a change set is.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

const (
	mediumImpactRatio = 0.1
	highImpactRatio   = 0.3
	majorChangeRatio  = 0.5
)

// Fixed recommendation messages. Each heuristic rule appends at most one.
const (
	recommendExpansionReview = "Additions greatly outnumber removals; review new content for unchecked expansion"
	recommendLossReview      = "Removals greatly outnumber additions; verify no required information was lost"
	recommendRewordingReview = "Most changes are rewordings; check that the original meaning is preserved"
	recommendMajorReview     = "More than half of the content changed; a full review is recommended"
)

// Insights summarizes a finished diff result.
type Insights struct {
	TotalChanges       int           `json:"total_changes"`
	ChangePercentage   float64       `json:"change_percentage"`
	Similarity         float64       `json:"similarity"`
	LargestChange      *ChangeRecord `json:"largest_change,omitempty"`
	ChangeDistribution Stats         `json:"change_distribution"`
	Impact             Impact        `json:"impact"`
	Recommendations    []string      `json:"recommendations"`
}

// BuildInsights aggregates a diff result into statistics, an impact rating
// and textual recommendations.
func BuildInsights(result *Result) Insights {
	stats := result.Stats
	total := len(result.Changes)
	totalChanges := stats.Added + stats.Removed + stats.Modified

	changeRatio := 0.0
	changePercentage := 0.0
	similarity := 100.0
	if total > 0 {
		changeRatio = float64(totalChanges) / float64(total)
		changePercentage = changeRatio * 100
		similarity = float64(stats.Unchanged) / float64(total) * 100
	}

	return Insights{
		TotalChanges:       totalChanges,
		ChangePercentage:   changePercentage,
		Similarity:         similarity,
		LargestChange:      largestChange(result.Changes),
		ChangeDistribution: stats,
		Impact:             rateImpact(changeRatio),
		Recommendations:    buildRecommendations(stats, changeRatio),
	}
}

// largestChange returns the non-unchanged record with the greatest side
// length; ties keep the first encountered.
func largestChange(changes []ChangeRecord) *ChangeRecord {
	var largest *ChangeRecord
	largestSize := -1
	for idx := range changes {
		change := &changes[idx]
		if change.Kind == ChangeUnchanged {
			continue
		}
		size := max(len(change.Original), len(change.Modified))
		if size > largestSize {
			largest = change
			largestSize = size
		}
	}
	if largest == nil {
		return nil
	}
	clone := *largest
	return &clone
}

func rateImpact(changeRatio float64) Impact {
	switch {
	case changeRatio < mediumImpactRatio:
		return ImpactLow
	case changeRatio < highImpactRatio:
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

func buildRecommendations(stats Stats, changeRatio float64) []string {
	recommendations := make([]string, 0, 4)
	if stats.Added > 2*stats.Removed {
		recommendations = append(recommendations, recommendExpansionReview)
	}
	if stats.Removed > 2*stats.Added {
		recommendations = append(recommendations, recommendLossReview)
	}
	if stats.Modified > stats.Added+stats.Removed {
		recommendations = append(recommendations, recommendRewordingReview)
	}
	if changeRatio > majorChangeRatio {
		recommendations = append(recommendations, recommendMajorReview)
	}
	return recommendations
}
