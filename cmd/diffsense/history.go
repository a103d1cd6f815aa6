package main

import (
	"encoding/json"
	"fmt"

	"github.com/aleister1102/diffsense/internal/datastore"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded diff runs",
		Long: `List the most recent diff runs recorded by the serve command.

With --export the listed runs are also written to a Parquet archive file
under the configured archive directory.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to list")
	cmd.Flags().Bool("export", false, "Export the listed runs to a Parquet archive")
	cmd.Flags().Bool("json", false, "Emit JSON instead of the textual listing")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := datastore.NewHistoryStore(cfg.StorageConfig, log)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	if export, _ := cmd.Flags().GetBool("export"); export {
		archiver := datastore.NewArchiver(cfg.StorageConfig, log)
		path, err := archiver.Export(records)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archive written to %s\n", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-9s  +%d -%d ~%d =%d  %s  %dms\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Granularity,
			rec.Added, rec.Removed, rec.Modified, rec.Unchanged, rec.Impact, rec.DurationMs)
	}
	return nil
}
