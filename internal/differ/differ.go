package differ

import (
	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
)

// Engine is the text comparison engine. It is pure and stateless: every
// Diff call owns its own token sequences and alignment table, so a single
// Engine is safe for concurrent use.
type Engine struct {
	defaults Options
}

// EngineBuilder provides a fluent interface for creating an Engine.
type EngineBuilder struct {
	defaults Options
}

// NewEngineBuilder creates a new engine builder.
func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{defaults: DefaultOptions()}
}

// WithDefaultOptions sets the options applied when a Diff call passes a
// zero-valued granularity.
func (b *EngineBuilder) WithDefaultOptions(opts Options) *EngineBuilder {
	b.defaults = opts
	return b
}

// Build creates the engine after checking the default option domains.
func (b *EngineBuilder) Build() (*Engine, error) {
	if !b.defaults.Granularity.IsValid() {
		return nil, errorwrapper.NewValidationError("granularity", b.defaults.Granularity, "unknown granularity")
	}
	if b.defaults.SimilarityThreshold < 0 || b.defaults.SimilarityThreshold > 1 {
		return nil, errorwrapper.NewValidationError("similarity_threshold", b.defaults.SimilarityThreshold, "must be within [0, 1]")
	}
	return &Engine{defaults: b.defaults}, nil
}

// NewEngine creates an engine with the default options.
func NewEngine() *Engine {
	engine, _ := NewEngineBuilder().Build()
	return engine
}

// Diff compares two texts and returns the ordered change list with
// aggregate stats. It never fails for any text content; option values are
// assumed to be within their declared domains (the transport boundary
// validates them).
func (e *Engine) Diff(original, modified string, opts Options) *Result {
	opts = e.applyDefaults(opts)

	originalTokens := Tokenize(original, opts.Granularity)
	modifiedTokens := Tokenize(modified, opts.Granularity)

	norm := newNormalizer(opts)
	changes := newClassifier(norm, opts.Granularity).Classify(originalTokens, modifiedTokens)

	if opts.SemanticAnalysis {
		scorer := newSemanticScorer(opts.SimilarityThreshold)
		for idx := range changes {
			if changes[idx].Kind == ChangeModified {
				scorer.Annotate(&changes[idx])
			}
		}
	}

	return &Result{
		Changes: changes,
		Stats:   countStats(changes),
	}
}

// applyDefaults fills an unset granularity from the engine defaults. A
// zero granularity is never valid, so it can safely mean "unset"; the
// similarity threshold is taken as given since 0 is a legal value and the
// callers overlay their configured defaults before invoking Diff.
func (e *Engine) applyDefaults(opts Options) Options {
	if opts.Granularity == "" {
		opts.Granularity = e.defaults.Granularity
	}
	return opts
}

func countStats(changes []ChangeRecord) Stats {
	var stats Stats
	for _, c := range changes {
		switch c.Kind {
		case ChangeAdded:
			stats.Added++
		case ChangeRemoved:
			stats.Removed++
		case ChangeModified:
			stats.Modified++
		case ChangeUnchanged:
			stats.Unchanged++
		}
	}
	return stats
}
