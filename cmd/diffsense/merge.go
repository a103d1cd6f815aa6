package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/spf13/cobra"
)

// NewMergeCmd creates the merge command.
func NewMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <original-file> <modified-file>",
		Short: "Replay a comparison and print the merged text",
		Long: `Compare two files, then reconstruct a merged text from the change
list. By default every change takes the modified side; individual changes
can be rejected (keep the original side) or kept on both sides by their
index in the change list.

Examples:
  # Accept everything (reproduces the modified file)
  diffsense merge old.txt new.txt

  # Reject changes 1 and 4, keep both sides of change 2
  diffsense merge --reject 1,4 --both 2 old.txt new.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runMergeCmd,
	}

	cmd.Flags().StringP("granularity", "g", "", "Comparison unit: character, word, line, sentence or paragraph")
	cmd.Flags().String("reject", "", "Comma-separated change indexes that keep the original side")
	cmd.Flags().String("both", "", "Comma-separated change indexes that keep both sides")

	return cmd
}

func runMergeCmd(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
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

	opts, err := diffOptionsFromFlags(cmd, cfg.DiffConfig.DiffOptions())
	if err != nil {
		return err
	}

	decisions := make(map[int]differ.MergeDecision)
	if err := parseDecisionList(cmd, "reject", differ.DecisionReject, decisions); err != nil {
		return err
	}
	if err := parseDecisionList(cmd, "both", differ.DecisionBoth, decisions); err != nil {
		return err
	}

	result := differ.NewEngine().Diff(string(original), string(modified), opts)
	fmt.Fprintln(cmd.OutOrStdout(), differ.Merge(result.Changes, decisions, opts.Granularity))
	return nil
}

func parseDecisionList(cmd *cobra.Command, flag string, decision differ.MergeDecision, decisions map[int]differ.MergeDecision) error {
	raw, _ := cmd.Flags().GetString(flag)
	if raw == "" {
		return nil
	}
	for _, part := range strings.Split(raw, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid change index %q in --%s", part, flag)
		}
		decisions[idx] = decision
	}
	return nil
}
