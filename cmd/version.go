package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/heyvito/oxio/cmd.Version=...".
var Version = "dev"

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of oxio",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewFigure("oxio", "", true)
		fmt.Fprintln(cmd.OutOrStdout(), banner.String())
		fmt.Fprintf(cmd.OutOrStdout(), "oxio %s\n", Version)
	},
}
