package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/vcs"
	"github.com/heyvito/oxio/internal/workflows"
)

func init() {
	syncCmd.AddCommand(syncInitCmd)
	syncCmd.AddCommand(syncMergeCmd)
	syncCmd.AddCommand(syncStatusCmd)
	RootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the store with its git remote",
	Long: `Commits local changes, rebases them on top of the remote branch and pushes
the result. The index is rebuilt afterwards.

Set a store up for syncing with:
  oxio sync init URL    # clone a remote into a new store
  oxio sync merge URL   # attach an existing store, merging both sides`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner(cmd, "Synchronizing...")
		defer cleanup()

		result, err := workflows.Sync(cmd.Context(), Env)
		if err != nil {
			return err
		}
		spinner.FinalMSG = fmt.Sprintf("Sync completed. %d item(s) on local cache.", result.Count)
		return nil
	},
}

var syncInitCmd = &cobra.Command{
	Use:   "init URL",
	Short: "Create the store by cloning a git remote",
	Long: `Clones URL into the store directory. An empty remote is initialized with a
.gitignore for the local index. Fails when the store already exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner(cmd, "Cloning "+args[0]+"...")
		defer cleanup()

		result, err := workflows.SyncInit(cmd.Context(), Env, workflows.SyncRemoteOptions{URL: args[0]})
		if err != nil {
			return err
		}
		spinner.FinalMSG = fmt.Sprintf("%s Store initialized from %s. %d item(s) on local cache.",
			ui.Success.Sprint("✓"), args[0], result.Count)
		return nil
	},
}

var syncMergeCmd = &cobra.Command{
	Use:   "merge URL",
	Short: "Attach an existing store to a git remote",
	Long: `Clones URL next to the store, copies every local item into the clone and
syncs it. The clone then replaces the store directory. The store is left
untouched if anything fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner(cmd, "Merging with "+args[0]+"...")
		defer cleanup()

		result, err := workflows.SyncMerge(cmd.Context(), Env, workflows.SyncRemoteOptions{URL: args[0]})
		if err != nil {
			return err
		}
		spinner.FinalMSG = fmt.Sprintf("%s Store merged with %s. %d item(s) on local cache.",
			ui.Success.Sprint("✓"), args[0], result.Count)
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the store can be synced",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := workflows.SyncStatus(cmd.Context(), Env)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch status.State {
		case vcs.NoLocalStore:
			fmt.Fprintln(out, "There is no local store at "+ui.Path.Sprint(Settings.StorePath))
		case vcs.NotConfigured:
			fmt.Fprintln(out, "Your store is not synced: "+status.Reason)
			fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("oxio sync merge URL")+" to attach it to a remote")
		case vcs.NoRemotes:
			fmt.Fprintln(out, "Your store is a git repository without remotes")
			fmt.Fprintln(out, ui.Info.Sprint("→")+" Add one with "+ui.Code.Sprint("git remote add origin URL"))
		case vcs.Ready:
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Your store is ready to sync")
		}
		return nil
	},
}
