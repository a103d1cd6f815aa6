package differ

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// PatchRendererConfig holds configuration for patch rendering.
type PatchRendererConfig struct {
	EnableSemanticCleanup bool
	EnableLineBasedDiff   bool
}

// DefaultPatchRendererConfig returns default configuration.
func DefaultPatchRendererConfig() PatchRendererConfig {
	return PatchRendererConfig{
		EnableSemanticCleanup: true,
		EnableLineBasedDiff:   true,
	}
}

// PatchRenderer produces display-oriented patch text for reports. It sits
// next to the engine rather than inside it: the engine's own classification
// never depends on this output.
type PatchRenderer struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	config PatchRendererConfig
}

// NewPatchRenderer creates a new patch renderer.
func NewPatchRenderer(config PatchRendererConfig) *PatchRenderer {
	return &PatchRenderer{
		dmp:    diffmatchpatch.New(),
		config: config,
	}
}

// RenderPatch returns the textual patch transforming original into modified.
func (pr *PatchRenderer) RenderPatch(original, modified string) string {
	patches := pr.dmp.PatchMake(original, modified)
	return pr.dmp.PatchToText(patches)
}

// RenderPretty returns a terminal-friendly rendering with insertions and
// deletions marked inline.
func (pr *PatchRenderer) RenderPretty(original, modified string) string {
	diffs := pr.dmp.DiffMain(original, modified, pr.config.EnableLineBasedDiff)
	if pr.config.EnableSemanticCleanup {
		diffs = pr.dmp.DiffCleanupSemantic(diffs)
	}
	return pr.dmp.DiffPrettyText(diffs)
}
