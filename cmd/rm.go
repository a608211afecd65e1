package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/workflows"
)

func init() {
	RootCmd.AddCommand(rmGroupCmd)
	RootCmd.AddCommand(rmItemCmd)
}

var rmGroupCmd = &cobra.Command{
	Use:   "rm-group GROUP",
	Short: "Remove a group and all its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.RemoveGroup(cmd.Context(), Env, workflows.RemoveGroupOptions{Group: args[0]})
		if err != nil {
			return err
		}
		Logger.Infof("Removed %d item(s)", result.Removed)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s and all its items.\n", result.Group)
		return nil
	},
}

var rmItemCmd = &cobra.Command{
	Use:   "rm-item GROUP NAME",
	Short: "Remove a single item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.RemoveItem(cmd.Context(), Env, workflows.RemoveItemOptions{Group: args[0], Name: args[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", result.Name, result.Group)
		return nil
	},
}
