package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/workflows"
)

func init() {
	RootCmd.AddCommand(reindexCmd)
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the index from the item files",
	Long: `Scans every item file in the store and writes a fresh index. Run it after
copying files into the store by hand or when a lookup reports a corrupted
index.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Reindex(cmd.Context(), Env)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reindex completed. %d item(s)\n", result.Count)
		return nil
	},
}
