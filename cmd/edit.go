package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/workflows"
)

func init() {
	RootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit GROUP NAME",
	Short: "Edit an item's value in your editor",
	Long: `Opens the value of an item in $VISUAL or $EDITOR, falling back to vi,
and stores what was saved. The item is created when it does not exist.`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	result, err := workflows.Edit(cmd.Context(), Env, workflows.EditOptions{Group: args[0], Name: args[1]})
	if err != nil {
		return err
	}
	verb := "updated"
	if result.Created {
		verb = "created"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (in %s)\n", ui.Success.Sprint("✓"), capitalize(verb), result.Item.Name, result.Item.Group)
	return nil
}
