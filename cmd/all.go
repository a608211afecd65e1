package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/store"
	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/workflows"
)

var allMatch string

func init() {
	allCmd.Flags().StringVarP(&allMatch, "match", "m", "", "only list items whose group/name matches a glob pattern")
	RootCmd.AddCommand(allCmd)
}

func resetAllCommandState() {
	allMatch = ""
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List every group and item with its value",
	Long: `Lists every group and its items. Long multi-line values are shortened.

Examples:
  oxio all                  # Everything
  oxio all --match 'wifi/*' # Items of the wifi group
  oxio all -m '*/pass*'     # Items starting with pass in any group`,
	Args: cobra.NoArgs,
	RunE: runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
	result, err := workflows.List(cmd.Context(), Env, workflows.ListOptions{Match: allMatch})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Total == 0 {
		fmt.Fprintln(out, "Your store is empty. Use "+ui.Code.Sprint("oxio GROUP ITEM VALUE")+" to create a new item")
		return nil
	}
	if len(result.Groups) == 0 {
		fmt.Fprintln(out, "No items match "+ui.Code.Sprint(allMatch))
		return nil
	}

	var items []store.Item
	for _, g := range result.Groups {
		items = append(items, g.Items...)
	}
	width := store.LongestName(items)

	for _, g := range result.Groups {
		fmt.Fprintf(out, "%s:\n", g.Name)
		for _, it := range g.Items {
			fmt.Fprintf(out, "  %s: %s\n", ui.AlignRight(it.Name, width), ui.Preview(it.Value))
		}
		fmt.Fprintln(out)
	}
	return nil
}
