package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aleister1102/diffsense/internal/batch"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/spf13/cobra"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest-file>",
		Short: "Compare many file pairs concurrently",
		Long: `Compare every file pair listed in a manifest.

The manifest holds one pair per line, two paths separated by whitespace:

  docs/v1/intro.txt  docs/v2/intro.txt
  docs/v1/usage.txt  docs/v2/usage.txt

Lines starting with # are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().StringP("granularity", "g", "", "Comparison unit: character, word, line, sentence or paragraph")
	cmd.Flags().IntP("concurrency", "n", 0, "Number of concurrent comparisons (overrides the configuration file)")
	cmd.Flags().Bool("json", false, "Emit JSON instead of the textual summary")

	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if concurrency, _ := cmd.Flags().GetInt("concurrency"); concurrency > 0 {
		cfg.BatchConfig.Concurrency = concurrency
	}

	pairs, err := readManifest(args[0])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("manifest %q lists no file pairs", args[0])
	}

	opts, err := diffOptionsFromFlags(cmd, cfg.DiffConfig.DiffOptions())
	if err != nil {
		return err
	}

	runner := batch.NewRunner(differ.NewEngine(), cfg.BatchConfig, log)
	results, err := runner.Run(cmd.Context(), pairs, opts)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: error: %v\n", res.Pair.OriginalPath, res.Pair.ModifiedPath, res.Err)
			continue
		}
		stats := res.Result.Stats
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: +%d -%d ~%d =%d (impact %s)\n",
			res.Pair.OriginalPath, res.Pair.ModifiedPath,
			stats.Added, stats.Removed, stats.Modified, stats.Unchanged, res.Insights.Impact)
	}
	return nil
}

// readManifest parses a whitespace-separated pair manifest.
func readManifest(path string) ([]batch.Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var pairs []batch.Pair
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("manifest %s line %d: expected two paths, got %d fields", path, lineNo, len(fields))
		}
		pairs = append(pairs, batch.Pair{OriginalPath: fields[0], ModifiedPath: fields[1]})
	}
	return pairs, scanner.Err()
}
