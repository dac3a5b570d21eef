package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listParams bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the calculators",
	Long: `Lists every calculator with its slug, UUID and menu path.

Examples:
  engineer list
  engineer list --params`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listParams, "params", "p", false, "show the parameters of each calculator")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, c := range registry.List() {
		fmt.Fprintf(out, "%-10s %s  %s\n", c.Slug(), c.ID(), strings.Join(c.Menu(), " > "))
		if !listParams {
			continue
		}
		for _, p := range c.Params() {
			var notes []string
			if p.Unit != "" {
				notes = append(notes, p.Unit)
			}
			if p.Default != "" {
				notes = append(notes, "default "+p.Default)
			}
			if p.Optional {
				notes = append(notes, "optional")
			}
			line := fmt.Sprintf("    %-18s %s", p.Name, p.Label)
			if len(notes) > 0 {
				line += " (" + strings.Join(notes, ", ") + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}
