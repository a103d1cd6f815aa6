package differ

// ChangeKind classifies a single change record.
type ChangeKind string

const (
	ChangeUnchanged ChangeKind = "unchanged"
	ChangeAdded     ChangeKind = "added"
	ChangeRemoved   ChangeKind = "removed"
	ChangeModified  ChangeKind = "modified"
)

// KeyWords holds the differing key terms of a modified pair.
type KeyWords struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// ChangeRecord is one entry in a diff result. Original and Modified are
// populated according to Kind: unchanged and modified carry both sides,
// removed carries only Original, added carries only Modified.
type ChangeRecord struct {
	Kind     ChangeKind `json:"kind"`
	Original string     `json:"original_text,omitempty"`
	Modified string     `json:"modified_text,omitempty"`

	// 1-indexed positions, populated only at line granularity.
	OriginalLine int `json:"original_line,omitempty"`
	ModifiedLine int `json:"modified_line,omitempty"`

	// Populated only for modified records when semantic analysis is enabled.
	Similarity  *float64  `json:"similarity,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	KeyWords    *KeyWords `json:"key_words,omitempty"`
}

// Stats aggregates change counts per kind.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// Total returns the number of records the stats describe.
func (s Stats) Total() int {
	return s.Added + s.Removed + s.Modified + s.Unchanged
}

// add merges other into s.
func (s *Stats) add(other Stats) {
	s.Added += other.Added
	s.Removed += other.Removed
	s.Modified += other.Modified
	s.Unchanged += other.Unchanged
}

// Result is an ordered sequence of change records plus aggregate stats.
// Stats.Total() always equals len(Changes).
type Result struct {
	Changes []ChangeRecord `json:"changes"`
	Stats   Stats          `json:"stats"`
}

// Clone returns a shallow snapshot of the result with its own change slice.
// The streaming coordinator uses it so partial results handed to consumers
// stay stable while the accumulator keeps growing.
func (r *Result) Clone() *Result {
	changes := make([]ChangeRecord, len(r.Changes))
	copy(changes, r.Changes)
	return &Result{Changes: changes, Stats: r.Stats}
}
