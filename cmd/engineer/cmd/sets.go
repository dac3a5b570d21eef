package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets [group [name]]",
	Short: "Show the value sets of the catalog",
	Long: `Without arguments lists the groups of the catalog, with a group lists
its sets, and with a group and a set name prints the members.

Examples:
  engineer sets
  engineer sets r
  engineer sets baudrate Standard`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSets,
}

func init() {
	rootCmd.AddCommand(setsCmd)
}

func runSets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	digits := cfg.Output.SignificantDigits

	if len(args) == 0 {
		for _, g := range catalog.Groups() {
			sets, err := catalog.Group(g)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-10s %d sets\n", g, sets.Len())
		}
		return nil
	}

	sets, err := catalog.Group(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		for _, name := range sets.Names() {
			s, err := sets.Get(name)
			if err != nil {
				return err
			}
			if s.Len() == 0 {
				fmt.Fprintf(out, "%-12s empty\n", name)
				continue
			}
			fmt.Fprintf(out, "%-12s %5d values  %s .. %s\n", name, s.Len(),
				s.At(0).FormatDigits(digits), s.At(s.Len()-1).FormatDigits(digits))
		}
		return nil
	}

	s, err := sets.Get(args[1])
	if err != nil {
		return err
	}
	for v := range s.All() {
		fmt.Fprintln(out, v.FormatDigits(digits))
	}
	return nil
}
