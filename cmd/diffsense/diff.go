package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/aleister1102/diffsense/internal/extractor"
	"github.com/spf13/cobra"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <original-file> <modified-file>",
		Short: "Compare two files and print the change list",
		Long: `Compare two files at the chosen granularity.

Examples:
  # Line-level comparison (default)
  diffsense diff old.txt new.txt

  # Word-level comparison with semantic annotations
  diffsense diff -g word --semantic old.txt new.txt

  # Compare the visible text of two HTML documents
  diffsense diff --html old.html new.html

  # Stream progress for large inputs as JSON events
  diffsense diff --stream --json old.txt new.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runDiffCmd,
	}

	cmd.Flags().StringP("granularity", "g", "", "Comparison unit: character, word, line, sentence or paragraph")
	cmd.Flags().BoolP("ignore-whitespace", "w", false, "Collapse whitespace runs before comparing")
	cmd.Flags().BoolP("ignore-case", "i", false, "Compare case-insensitively")
	cmd.Flags().BoolP("semantic", "s", false, "Annotate modified pairs with similarity and key words")
	cmd.Flags().Float64P("threshold", "t", 0, "Similarity threshold in [0,1] for explanation wording")
	cmd.Flags().Bool("html", false, "Extract visible text from HTML inputs before comparing")
	cmd.Flags().Bool("json", false, "Emit JSON instead of the textual rendering")
	cmd.Flags().Bool("insights", false, "Append change insights to the output")
	cmd.Flags().Bool("patch", false, "Emit patch text instead of the change list")
	cmd.Flags().Bool("stream", false, "Process in chunks and report incremental progress")
	cmd.Flags().Int("chunk-size", 0, "Chunk size in characters for streaming mode")

	return cmd
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	original, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	modified, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	originalText, modifiedText := string(original), string(modified)

	if useHTML, _ := cmd.Flags().GetBool("html"); useHTML {
		htmlExtractor := extractor.NewHTMLExtractor(log)
		if originalText, err = htmlExtractor.ExtractText(originalText); err != nil {
			return err
		}
		if modifiedText, err = htmlExtractor.ExtractText(modifiedText); err != nil {
			return err
		}
	}

	if renderPatch, _ := cmd.Flags().GetBool("patch"); renderPatch {
		renderer := differ.NewPatchRenderer(differ.DefaultPatchRendererConfig())
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPatch(originalText, modifiedText))
		return nil
	}

	opts, err := diffOptionsFromFlags(cmd, cfg.DiffConfig.DiffOptions())
	if err != nil {
		return err
	}

	engine := differ.NewEngine()
	asJSON, _ := cmd.Flags().GetBool("json")

	if stream, _ := cmd.Flags().GetBool("stream"); stream {
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		if chunkSize <= 0 {
			chunkSize = cfg.DiffConfig.ChunkSize
		}
		return streamToOutput(cmd, engine, originalText, modifiedText, opts, chunkSize, asJSON)
	}

	result := engine.Diff(originalText, modifiedText, opts)

	if asJSON {
		payload := map[string]any{"result": result}
		if withInsights, _ := cmd.Flags().GetBool("insights"); withInsights {
			payload["insights"] = differ.BuildInsights(result)
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderChanges(result))
	if withInsights, _ := cmd.Flags().GetBool("insights"); withInsights {
		fmt.Fprint(cmd.OutOrStdout(), renderInsights(differ.BuildInsights(result)))
	}
	return nil
}

// diffOptionsFromFlags overlays command-line flags onto the configured
// default options.
func diffOptionsFromFlags(cmd *cobra.Command, opts differ.Options) (differ.Options, error) {
	if granularity, _ := cmd.Flags().GetString("granularity"); granularity != "" {
		parsed, err := differ.ParseGranularity(strings.ToLower(granularity))
		if err != nil {
			return opts, err
		}
		opts.Granularity = parsed
	}
	if changed := cmd.Flags().Changed("ignore-whitespace"); changed {
		opts.IgnoreWhitespace, _ = cmd.Flags().GetBool("ignore-whitespace")
	}
	if changed := cmd.Flags().Changed("ignore-case"); changed {
		opts.IgnoreCase, _ = cmd.Flags().GetBool("ignore-case")
	}
	if changed := cmd.Flags().Changed("semantic"); changed {
		opts.SemanticAnalysis, _ = cmd.Flags().GetBool("semantic")
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if threshold < 0 || threshold > 1 {
			return opts, fmt.Errorf("threshold %v outside [0, 1]", threshold)
		}
		opts.SimilarityThreshold = threshold
	}
	return opts, nil
}

func streamToOutput(cmd *cobra.Command, engine *differ.Engine, original, modified string, opts differ.Options, chunkSize int, asJSON bool) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	for event := range engine.StreamDiff(context.Background(), original, modified, opts, chunkSize) {
		if asJSON {
			if err := encoder.Encode(event); err != nil {
				return err
			}
			continue
		}
		if event.Complete {
			fmt.Fprint(cmd.OutOrStdout(), renderChanges(event.Partial))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "progress: %.0f%%\n", event.Progress)
		}
	}
	return nil
}

// renderChanges prints one prefixed line per change record: space for
// unchanged, +/- for added and removed, ~ for modified pairs.
func renderChanges(result *differ.Result) string {
	var sb strings.Builder
	for _, change := range result.Changes {
		switch change.Kind {
		case differ.ChangeUnchanged:
			fmt.Fprintf(&sb, "  %s\n", change.Original)
		case differ.ChangeAdded:
			fmt.Fprintf(&sb, "+ %s\n", change.Modified)
		case differ.ChangeRemoved:
			fmt.Fprintf(&sb, "- %s\n", change.Original)
		case differ.ChangeModified:
			fmt.Fprintf(&sb, "~ %s => %s\n", change.Original, change.Modified)
			if change.Explanation != "" {
				fmt.Fprintf(&sb, "    %s\n", change.Explanation)
			}
		}
	}
	stats := result.Stats
	fmt.Fprintf(&sb, "\n%d added, %d removed, %d modified, %d unchanged\n",
		stats.Added, stats.Removed, stats.Modified, stats.Unchanged)
	return sb.String()
}

func renderInsights(insights differ.Insights) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nimpact: %s, changed: %.1f%%, similarity: %.1f%%\n",
		insights.Impact, insights.ChangePercentage, insights.Similarity)
	for _, rec := range insights.Recommendations {
		fmt.Fprintf(&sb, "  - %s\n", rec)
	}
	return sb.String()
}
