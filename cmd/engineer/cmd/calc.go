package cmd

import (
	"fmt"

	"github.com/edp1096/toy-engineer/pkg/calc"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/spf13/cobra"
)

var (
	calcXLSX string
	calcTSV  bool
)

var calcCmd = &cobra.Command{
	Use:   "calc <slug|uuid> [name=value...]",
	Short: "Run a calculator",
	Long: `Runs one calculator. Parameters are given as name=value; values accept
SI prefixes (4.7k, 100n, 2.2u).

Examples:
  engineer calc ohm v=12 r=1k
  engineer calc parallel r=12345 r_set=E24
  engineer calc divider v_in=12 v_out=3.3 r_sum=10k r_load=100k
  engineer calc rc t1=1 v1=6.32 t2=3 v2=9.5
  engineer calc trace i=5 thickness=2 tempdelta=20 --xlsx trace.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcXLSX, "xlsx", "", "also save the result to an Excel file")
	calcCmd.Flags().BoolVar(&calcTSV, "tsv", false, "print tab-separated values instead of a table")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	c, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	in, err := calc.ParseInput(args[1:])
	if err != nil {
		return err
	}
	logf("running %s (%s) with %v", c.Slug(), c.ID(), in)

	tbl, err := calc.Run(c, in)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Slug(), err)
	}

	out := cmd.OutOrStdout()
	if calcTSV {
		err = tbl.WriteTSV(out)
	} else {
		err = tbl.Print(out)
	}
	if err != nil {
		return err
	}

	if calcXLSX != "" {
		if err := report.SaveXLSX(calcXLSX, tbl); err != nil {
			return err
		}
		logf("saved %s", calcXLSX)
	}
	return nil
}
