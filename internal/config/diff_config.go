package config

// DiffConfig holds the default comparison options applied when a request
// leaves them unset, plus the input bounds the boundary enforces before the
// engine runs.
type DiffConfig struct {
	Granularity         string  `json:"granularity,omitempty" yaml:"granularity,omitempty" validate:"omitempty,granularity"`
	IgnoreWhitespace    bool    `json:"ignore_whitespace,omitempty" yaml:"ignore_whitespace,omitempty"`
	IgnoreCase          bool    `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	SemanticAnalysis    bool    `json:"semantic_analysis,omitempty" yaml:"semantic_analysis,omitempty"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty" yaml:"similarity_threshold,omitempty" validate:"gte=0,lte=1"`
	ChunkSize           int     `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty" validate:"gte=0"`
	MaxInputBytes       int     `json:"max_input_bytes,omitempty" yaml:"max_input_bytes,omitempty" validate:"gte=0"`
}

// NewDefaultDiffConfig creates default diff configuration.
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Granularity:         DefaultDiffGranularity,
		SimilarityThreshold: DefaultDiffSimilarityThreshold,
		ChunkSize:           DefaultDiffChunkSize,
		MaxInputBytes:       DefaultDiffMaxInputBytes,
	}
}
